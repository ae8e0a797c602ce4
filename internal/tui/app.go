// Package tui is the interactive sheet: one math input per row, results
// rendered inline, evaluation delegated to the external engine.
package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mathsheet/internal/config"
	"mathsheet/internal/engine"
	"mathsheet/internal/library"
	"mathsheet/internal/sheet"
)

// Options wires the app's collaborators.
type Options struct {
	Config config.Config
	Engine engine.Evaluator
	// Store may be nil when the library database is unavailable; library
	// keys then report that instead of failing.
	Store *library.Store
	// FilePath is the file the sheet was opened from; ctrl+s writes back to
	// it. Empty means the sheet is unnamed and saves go to the library.
	FilePath string
	// Body is the initial sheet text, usually the opened file's contents.
	Body string
}

// App is the bubbletea model for one sheet.
type App struct {
	ctrl  *sheet.Controller
	eval  engine.Evaluator
	store *library.Store
	cfg   config.Config

	inputs []textinput.Model
	focus  int
	width  int
	height int

	status     string
	statusErr  bool
	evaluating bool

	filePath  string
	sheetName string

	picker     list.Model
	showPicker bool

	namePrompt textinput.Model
	naming     bool

	keys keyMap
}

// New builds the app. The initial body is loaded into the controller so the
// first Init-triggered evaluation covers it.
func New(opts Options) App {
	mode, err := engine.ParseMode(opts.Config.Engine.Mode)
	if err != nil {
		mode = engine.ModeFloat
	}

	ctrl := sheet.NewController(mode)
	if opts.Body != "" {
		ctrl.Load(opts.Body)
	}

	prompt := textinput.New()
	prompt.Prompt = "Save as: "
	prompt.PromptStyle = promptStyle
	prompt.CharLimit = 64

	picker := list.New([]list.Item{}, sheetItemDelegate{}, 0, 0)
	picker.Title = "Library"
	picker.Styles.Title = pickerHdrStyle
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)
	picker.SetShowHelp(false)
	picker.DisableQuitKeybindings()

	a := App{
		ctrl:       ctrl,
		eval:       opts.Engine,
		store:      opts.Store,
		cfg:        opts.Config,
		filePath:   opts.FilePath,
		picker:     picker,
		namePrompt: prompt,
		keys:       newKeyMap(),
	}
	if opts.FilePath != "" {
		a.sheetName = filepath.Base(opts.FilePath)
	}
	a.syncInputs()
	a.setFocus(0)
	return a
}

func (a App) Init() tea.Cmd {
	return textinput.Blink
}

func newRowInput() textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Cursor.Style = lipgloss.NewStyle().Foreground(colorFocus)
	return in
}

// syncInputs reconciles the textinput widgets with the controller's rows
// after structural changes (append, delete, load).
func (a *App) syncInputs() {
	rows := a.ctrl.Rows()
	for len(a.inputs) < len(rows) {
		a.inputs = append(a.inputs, newRowInput())
	}
	a.inputs = a.inputs[:len(rows)]
	for i := range rows {
		if a.inputs[i].Value() != rows[i].Text {
			a.inputs[i].SetValue(rows[i].Text)
			a.inputs[i].CursorEnd()
		}
	}
}

func (a *App) setFocus(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(a.inputs) {
		i = len(a.inputs) - 1
	}
	for j := range a.inputs {
		a.inputs[j].Blur()
	}
	a.inputs[i].Focus()
	a.focus = i
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

// maybeEvaluate issues the single evaluation request implied by pending
// edits. Every request supersedes anything in flight; stale replies are
// dropped by sequence number when they land.
func (a *App) maybeEvaluate() tea.Cmd {
	req, ok := a.ctrl.NextRequest()
	if !ok {
		return nil
	}
	a.evaluating = true
	return evaluateCmd(a.eval, a.cfg.Engine.Timeout(), req)
}
