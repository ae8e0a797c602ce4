package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"mathsheet/internal/engine"
	"mathsheet/internal/library"
	"mathsheet/internal/sheet"
)

type evalDoneMsg struct {
	seq      uint64
	outcomes []engine.RawOutcome
	err      error
}

type fileSavedMsg struct {
	path string
	err  error
}

type librarySavedMsg struct {
	sheet library.Sheet
	err   error
}

type libraryListMsg struct {
	sheets []library.Sheet
	err    error
}

type sheetLoadedMsg struct {
	sheet library.Sheet
	err   error
}

type copiedMsg struct {
	err error
}

// evaluateCmd runs one engine call for the given request. The sequence number
// rides along so the reply can be discarded if a newer request was issued
// while this one was in flight.
func evaluateCmd(ev engine.Evaluator, timeout time.Duration, req sheet.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		outcomes, err := ev.Evaluate(ctx, req.Mode, req.Input)
		return evalDoneMsg{seq: req.Seq, outcomes: outcomes, err: err}
	}
}

func saveFileCmd(path, body string) tea.Cmd {
	return func() tea.Msg {
		err := os.WriteFile(path, []byte(body+"\n"), 0o644)
		return fileSavedMsg{path: path, err: err}
	}
}

func saveLibraryCmd(store *library.Store, name, body, mode string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		sh, err := store.Save(ctx, name, body, mode)
		return librarySavedMsg{sheet: sh, err: err}
	}
}

func listLibraryCmd(store *library.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		sheets, err := store.List(ctx)
		return libraryListMsg{sheets: sheets, err: err}
	}
}

func loadSheetCmd(store *library.Store, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		sh, err := store.Get(ctx, id)
		return sheetLoadedMsg{sheet: sh, err: err}
	}
}

func copyRowCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: copyToClipboard(text)}
	}
}

// sheetItem adapts a library sheet to the picker list.
type sheetItem struct {
	sheet library.Sheet
}

func (s sheetItem) Title() string       { return s.sheet.Name }
func (s sheetItem) Description() string { return s.sheet.Mode }
func (s sheetItem) FilterValue() string { return s.sheet.Name }

type sheetItemDelegate struct{}

func (d sheetItemDelegate) Height() int                               { return 1 }
func (d sheetItemDelegate) Spacing() int                              { return 0 }
func (d sheetItemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d sheetItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(sheetItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = "> "
	}
	line := fmt.Sprintf("%s%-24s %-8s %s",
		prefix, truncate(entry.sheet.Name, 24), entry.sheet.Mode,
		entry.sheet.UpdatedAt.Format("Jan 02 15:04"))
	fmt.Fprint(w, padRight(line, m.Width()))
}
