package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"mathsheet/internal/engine"
	"mathsheet/internal/sheet"
)

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := a.width == 0
		a.width, a.height = msg.Width, msg.Height
		a.resize()
		if first {
			// First size message after startup: kick off evaluation of any
			// sheet body loaded from a file.
			return a, a.maybeEvaluate()
		}
		return a, nil

	case evalDoneMsg:
		return a.handleEvalDone(msg)

	case fileSavedMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Save failed: %v", msg.err), true)
		} else {
			a.setStatus("Saved "+msg.path, false)
		}
		return a, nil

	case librarySavedMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Save failed: %v", msg.err), true)
		} else {
			a.sheetName = msg.sheet.Name
			a.setStatus(fmt.Sprintf("Saved '%s' to library.", msg.sheet.Name), false)
		}
		return a, nil

	case libraryListMsg:
		if msg.err != nil {
			a.showPicker = false
			a.setStatus(fmt.Sprintf("Library error: %v", msg.err), true)
			return a, nil
		}
		items := make([]list.Item, 0, len(msg.sheets))
		for _, sh := range msg.sheets {
			items = append(items, sheetItem{sheet: sh})
		}
		a.picker.SetItems(items)
		a.picker.Select(0)
		return a, nil

	case sheetLoadedMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Load failed: %v", msg.err), true)
			return a, nil
		}
		a.ctrl.Load(msg.sheet.Body)
		if mode, err := engine.ParseMode(msg.sheet.Mode); err == nil {
			a.ctrl.SetMode(mode)
		}
		a.sheetName = msg.sheet.Name
		a.filePath = ""
		a.showPicker = false
		a.syncInputs()
		a.setFocus(0)
		a.setStatus(fmt.Sprintf("Opened '%s'.", msg.sheet.Name), false)
		return a, a.maybeEvaluate()

	case copiedMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Copy failed: %v", msg.err), true)
		} else {
			a.setStatus("Row copied.", false)
		}
		return a, nil

	case tea.KeyMsg:
		if a.naming {
			return a.updateNaming(msg)
		}
		if a.showPicker {
			return a.updatePicker(msg)
		}
		return a.updateSheet(msg)
	}
	return a, nil
}

// updateSheet is the navigation bridge: it maps widget-level key events onto
// controller operations. Enter appends on the last row and moves down;
// up/down never wrap; backspace on an empty row deletes it, floored at one
// row; anything else is text editing on the focused row.
func (a App) updateSheet(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Save):
		return a.save()

	case key.Matches(msg, a.keys.Library):
		if a.store == nil {
			a.setStatus("Library unavailable.", true)
			return a, nil
		}
		a.showPicker = true
		return a, listLibraryCmd(a.store)

	case key.Matches(msg, a.keys.Copy):
		return a, copyRowCmd(a.ctrl.RowText(a.focus))

	case key.Matches(msg, a.keys.Enter):
		target := a.ctrl.EnterAt(a.focus)
		a.syncInputs()
		a.resize()
		a.setFocus(target)
		return a, a.maybeEvaluate()

	case key.Matches(msg, a.keys.Up):
		if target, ok := a.ctrl.FocusUpFrom(a.focus); ok {
			a.setFocus(target)
		}
		return a, nil

	case key.Matches(msg, a.keys.Down):
		if target, ok := a.ctrl.FocusDownFrom(a.focus); ok {
			a.setFocus(target)
		}
		return a, nil

	case key.Matches(msg, a.keys.Delete) && a.inputs[a.focus].Value() == "":
		target := a.ctrl.DeleteOutFrom(a.focus)
		a.syncInputs()
		a.setFocus(target)
		return a, a.maybeEvaluate()
	}

	// Everything else edits the focused row.
	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	if v := a.inputs[a.focus].Value(); v != a.ctrl.RowText(a.focus) {
		a.ctrl.EditRow(a.focus, v)
		return a, tea.Batch(cmd, a.maybeEvaluate())
	}
	return a, cmd
}

// handleEvalDone applies a completed evaluation. Replies from superseded
// requests are dropped wholesale; an automatic mode switch re-issues the
// evaluation immediately since the reply was computed under the old mode.
func (a App) handleEvalDone(msg evalDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.ctrl.ApplyFailure(msg.seq) {
			a.evaluating = false
			a.setStatus(fmt.Sprintf("Evaluation failed: %v", msg.err), true)
			log.Printf("evaluation failed: %v", msg.err)
		}
		return a, nil
	}

	applied := a.ctrl.ApplyResult(msg.seq, msg.outcomes)
	if applied.Stale {
		return a, nil
	}
	a.evaluating = false

	if applied.ModeSwitched {
		a.setStatus(fmt.Sprintf("Switched to %s mode.", applied.Mode), false)
		return a, a.maybeEvaluate()
	}
	if len(applied.UnknownSymbols) > 0 {
		symbol := applied.UnknownSymbols[0]
		if near, ok := sheet.NearestUnit(symbol); ok {
			a.setStatus(fmt.Sprintf("Unknown symbol '%s' — did you mean '%s'?", symbol, near), false)
		}
	}
	return a, nil
}

func (a App) save() (tea.Model, tea.Cmd) {
	if a.filePath != "" {
		return a, saveFileCmd(a.filePath, a.ctrl.Text())
	}
	if a.store == nil {
		a.setStatus("Nowhere to save: no file path and no library.", true)
		return a, nil
	}
	a.naming = true
	a.namePrompt.SetValue(a.sheetName)
	a.namePrompt.CursorEnd()
	return a, a.namePrompt.Focus()
}

func (a App) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Close):
		a.naming = false
		a.namePrompt.Blur()
		return a, nil
	case key.Matches(msg, a.keys.Enter):
		name := strings.TrimSpace(a.namePrompt.Value())
		if name == "" {
			a.setStatus("Sheet name cannot be empty.", true)
			return a, nil
		}
		a.naming = false
		a.namePrompt.Blur()
		return a, saveLibraryCmd(a.store, name, a.ctrl.Text(), a.ctrl.Mode().String())
	}
	var cmd tea.Cmd
	a.namePrompt, cmd = a.namePrompt.Update(msg)
	return a, cmd
}

func (a App) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Close):
		a.showPicker = false
		return a, nil
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Enter):
		item, ok := a.picker.SelectedItem().(sheetItem)
		if !ok {
			a.showPicker = false
			return a, nil
		}
		return a, loadSheetCmd(a.store, item.sheet.ID)
	}
	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	return a, cmd
}

func (a *App) resize() {
	if a.width == 0 {
		return
	}
	inputWidth := a.width/2 - 6
	if inputWidth < 24 {
		inputWidth = 24
	}
	for i := range a.inputs {
		a.inputs[i].Width = inputWidth
	}
	a.namePrompt.Width = min(48, a.width-12)
	a.picker.SetWidth(min(64, a.width-4))
	a.picker.SetHeight(min(16, a.height-6))
}
