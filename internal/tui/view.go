package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (a App) View() string {
	if a.width == 0 {
		return "loading..."
	}
	if a.showPicker {
		return a.viewPicker()
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")

	rows := a.ctrl.Rows()
	inputCol := 0
	for i := range a.inputs {
		inputCol = max(inputCol, a.inputs[i].Width)
	}
	for i, row := range rows {
		if a.cfg.UI.ShowLineNumbers {
			b.WriteString(lineNumStyle.Render(fmt.Sprintf("%3d ", i+1)))
		}
		b.WriteString(gutterStyle.Render("│ "))

		field := a.inputs[i].View()
		b.WriteString(padRight(field, inputCol))

		if display := row.Result.Display(); display != "" {
			style := resultStyle
			if row.Result != nil && row.Result.Err != nil {
				style = errResultStyle
			}
			b.WriteString(gutterStyle.Render(" = "))
			b.WriteString(style.Render(display))
		}
		b.WriteString("\n")
	}

	body := b.String()
	statusLine := a.renderStatus()
	footer := footerStyle.Render(renderHelp(a.keys.ShortHelp()))
	return a.placeWithFooter(body, statusLine, footer)
}

func (a App) renderHeader() string {
	name := a.sheetName
	if name == "" {
		name = "untitled"
	}
	header := titleStyle.Render(" mathsheet") + "  " +
		modeStyle.Render("["+a.ctrl.Mode().String()+"]") + "  " + name
	if a.evaluating {
		header += dirtyStyle.Render(" …")
	}
	return header
}

func (a App) renderStatus() string {
	text := a.status
	if a.naming {
		text = a.namePrompt.View()
	}
	style := statusBarStyle
	if a.statusErr {
		style = statusErrStyle
	}
	flat := strings.ReplaceAll(text, "\n", " ")
	return style.Render(padRight(flat, a.width-style.GetHorizontalFrameSize()))
}

func (a App) viewPicker() string {
	var b strings.Builder
	b.WriteString(a.picker.View())
	b.WriteString("\n")
	statusLine := a.renderStatus()
	footer := footerStyle.Render(renderHelp([]key.Binding{a.keys.Enter, a.keys.Close, a.keys.Quit}))
	return a.placeWithFooter(b.String(), statusLine, footer)
}

func (a App) placeWithFooter(body, statusLine, footer string) string {
	if a.height == 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := a.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(a.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	return main + "\n" + statusLine + "\n" + footer
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, boldKey(help.Key)+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

func boldKey(text string) string {
	if text == "" {
		return ""
	}
	return "\x1b[1m" + text + "\x1b[22m"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
