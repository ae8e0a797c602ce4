package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mathsheet/internal/engine"
)

// stubEngine replays canned responses per (mode, input) pair. Unscripted
// inputs get one blank outcome per line, so intermediate keystrokes while
// typing settle quietly.
type stubEngine struct {
	responses map[string][]engine.RawOutcome
	err       error
}

func (s stubEngine) Evaluate(_ context.Context, mode engine.Mode, input string) ([]engine.RawOutcome, error) {
	if s.err != nil {
		return nil, s.err
	}
	if out, ok := s.responses[mode.String()+"|"+input]; ok {
		return out, nil
	}
	lines := strings.Split(input, "\n")
	out := make([]engine.RawOutcome, len(lines))
	for i := range out {
		out[i] = engine.Blank()
	}
	return out, nil
}

func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func specialKey(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: kt}
}

// pump executes a returned command synchronously and feeds any of our own
// messages back through Update, following batches. External messages (cursor
// blinks and the like) are dropped; the runtime owns those.
func pump(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = pump(t, m, c)
		}
		return m
	}
	switch msg.(type) {
	case evalDoneMsg, fileSavedMsg, librarySavedMsg, libraryListMsg, sheetLoadedMsg, copiedMsg:
		next, nextCmd := m.Update(msg)
		return pump(t, next, nextCmd)
	}
	return m
}

func sendKey(t *testing.T, m tea.Model, msg tea.KeyMsg) tea.Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return pump(t, next, cmd)
}

func typeInput(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	for _, r := range s {
		m = sendKey(t, m, keyMsg(string(r)))
	}
	return m
}

func newTestApp(t *testing.T, ev engine.Evaluator, opts Options) tea.Model {
	t.Helper()
	opts.Engine = ev
	a := New(opts)
	var m tea.Model = a
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return pump(t, next, cmd)
}

func app(t *testing.T, m tea.Model) App {
	t.Helper()
	a, ok := m.(App)
	if !ok {
		t.Fatalf("model is %T, want App", m)
	}
	return a
}

func TestTypingEvaluatesRow(t *testing.T) {
	ev := stubEngine{responses: map[string][]engine.RawOutcome{
		"float|2+2": {engine.Ok("4")},
	}}
	m := newTestApp(t, ev, Options{})
	m = typeInput(t, m, "2+2")

	a := app(t, m)
	if got := a.ctrl.Rows()[0].Result.Display(); got != "4" {
		t.Fatalf("result = %q, want %q", got, "4")
	}
	if !strings.Contains(m.View(), "4") {
		t.Fatal("view does not render the result")
	}
}

func TestEnterAppendsRowAndMovesFocus(t *testing.T) {
	m := newTestApp(t, stubEngine{}, Options{})
	m = typeInput(t, m, "1")
	m = sendKey(t, m, specialKey(tea.KeyEnter))

	a := app(t, m)
	if a.ctrl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.ctrl.Len())
	}
	if a.focus != 1 {
		t.Fatalf("focus = %d, want 1", a.focus)
	}
	if len(a.inputs) != 2 {
		t.Fatalf("inputs = %d, want 2", len(a.inputs))
	}
}

func TestArrowFocusDoesNotWrap(t *testing.T) {
	m := newTestApp(t, stubEngine{}, Options{Body: "a\nb\nc"})

	a := app(t, m)
	if a.focus != 0 {
		t.Fatalf("initial focus = %d, want 0", a.focus)
	}

	m = sendKey(t, m, specialKey(tea.KeyUp))
	if a = app(t, m); a.focus != 0 {
		t.Fatalf("focus after up at top = %d, want 0", a.focus)
	}

	m = sendKey(t, m, specialKey(tea.KeyDown))
	m = sendKey(t, m, specialKey(tea.KeyDown))
	m = sendKey(t, m, specialKey(tea.KeyDown))
	if a = app(t, m); a.focus != 2 {
		t.Fatalf("focus after down at bottom = %d, want 2", a.focus)
	}
}

func TestBackspaceOnEmptyRowDeletesIt(t *testing.T) {
	m := newTestApp(t, stubEngine{}, Options{})
	m = typeInput(t, m, "1")
	m = sendKey(t, m, specialKey(tea.KeyEnter))
	m = sendKey(t, m, specialKey(tea.KeyBackspace))

	a := app(t, m)
	if a.ctrl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", a.ctrl.Len())
	}
	if a.focus != 0 {
		t.Fatalf("focus = %d, want 0", a.focus)
	}
	if a.ctrl.RowText(0) != "1" {
		t.Fatalf("row text = %q, want %q", a.ctrl.RowText(0), "1")
	}
}

func TestBackspaceOnNonEmptyRowEditsText(t *testing.T) {
	m := newTestApp(t, stubEngine{}, Options{})
	m = typeInput(t, m, "12")
	m = sendKey(t, m, specialKey(tea.KeyBackspace))

	a := app(t, m)
	if a.ctrl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (backspace must not delete a non-empty row)", a.ctrl.Len())
	}
	if a.ctrl.RowText(0) != "1" {
		t.Fatalf("row text = %q, want %q", a.ctrl.RowText(0), "1")
	}
}

func TestBackspaceOnlyRowIsNoop(t *testing.T) {
	m := newTestApp(t, stubEngine{}, Options{})
	m = sendKey(t, m, specialKey(tea.KeyBackspace))

	a := app(t, m)
	if a.ctrl.Len() != 1 || len(a.inputs) != 1 {
		t.Fatalf("Len() = %d inputs = %d, want 1/1", a.ctrl.Len(), len(a.inputs))
	}
}

func TestImaginarySwitchFlow(t *testing.T) {
	ev := stubEngine{responses: map[string][]engine.RawOutcome{
		"float|i^2":   {engine.Err(`{"DefinitionNotFoundError":"i"}`)},
		"complex|i^2": {engine.Ok("-1")},
	}}
	m := newTestApp(t, ev, Options{})
	m = typeInput(t, m, "i^2")

	a := app(t, m)
	if a.ctrl.Mode() != engine.ModeComplex {
		t.Fatalf("mode = %v, want complex", a.ctrl.Mode())
	}
	if got := a.ctrl.Rows()[0].Result.Display(); got != "-1" {
		t.Fatalf("result = %q, want %q", got, "-1")
	}
	if !strings.Contains(a.status, "Switched to complex mode.") {
		t.Fatalf("status = %q", a.status)
	}
}

func TestUnknownSymbolSuggestsNearestUnit(t *testing.T) {
	ev := stubEngine{responses: map[string][]engine.RawOutcome{
		"float|2 kh": {engine.Err(`{"DefinitionNotFoundError":"kh"}`)},
	}}
	m := newTestApp(t, ev, Options{})
	m = typeInput(t, m, "2 kh")

	a := app(t, m)
	if a.ctrl.Mode() != engine.ModeFloat {
		t.Fatalf("mode = %v, want float (no switch for near misses)", a.ctrl.Mode())
	}
	if !strings.Contains(a.status, "did you mean 'kg'") {
		t.Fatalf("status = %q", a.status)
	}
}

func TestEvaluationFailureClearsResults(t *testing.T) {
	m := newTestApp(t, stubEngine{err: errors.New("connection refused")}, Options{})
	m = typeInput(t, m, "1")

	a := app(t, m)
	if a.ctrl.Rows()[0].Result != nil {
		t.Fatal("failure should leave no stale result")
	}
	if !a.statusErr || !strings.Contains(a.status, "Evaluation failed") {
		t.Fatalf("status = %q err=%v", a.status, a.statusErr)
	}
}

func TestSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.math")
	m := newTestApp(t, stubEngine{}, Options{FilePath: path})
	m = typeInput(t, m, "2+2")
	m = sendKey(t, m, specialKey(tea.KeyCtrlS))

	a := app(t, m)
	if a.statusErr {
		t.Fatalf("save failed: %q", a.status)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "2+2\n" {
		t.Fatalf("file = %q", string(data))
	}
}

func TestSaveWithoutDestination(t *testing.T) {
	m := newTestApp(t, stubEngine{}, Options{})
	m = sendKey(t, m, specialKey(tea.KeyCtrlS))

	a := app(t, m)
	if !a.statusErr || !strings.Contains(a.status, "Nowhere to save") {
		t.Fatalf("status = %q err=%v", a.status, a.statusErr)
	}
}

func TestLibraryUnavailable(t *testing.T) {
	m := newTestApp(t, stubEngine{}, Options{})
	m = sendKey(t, m, specialKey(tea.KeyCtrlO))

	a := app(t, m)
	if a.showPicker {
		t.Fatal("picker should not open without a store")
	}
	if !a.statusErr || !strings.Contains(a.status, "Library unavailable") {
		t.Fatalf("status = %q err=%v", a.status, a.statusErr)
	}
}

func TestInitialBodyEvaluatesOnFirstResize(t *testing.T) {
	ev := stubEngine{responses: map[string][]engine.RawOutcome{
		"float|1+1\n2+2": {engine.Ok("2"), engine.Ok("4")},
	}}
	m := newTestApp(t, ev, Options{Body: "1+1\n2+2"})

	a := app(t, m)
	rows := a.ctrl.Rows()
	if rows[0].Result.Display() != "2" || rows[1].Result.Display() != "4" {
		t.Fatalf("rows = %q / %q", rows[0].Result.Display(), rows[1].Result.Display())
	}
}

func TestViewShowsModeAndErrors(t *testing.T) {
	ev := stubEngine{responses: map[string][]engine.RawOutcome{
		"float|1/0": {engine.Err(`{"EvalError":"Division by zero"}`)},
	}}
	m := newTestApp(t, ev, Options{})
	m = typeInput(t, m, "1/0")

	view := m.View()
	if !strings.Contains(view, "float") {
		t.Fatal("view should show the active mode")
	}
	if !strings.Contains(view, "Division by zero") {
		t.Fatal("view should render the row error")
	}
}
