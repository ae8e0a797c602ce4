package sheet

import (
	"strings"

	"mathsheet/internal/engine"
)

// Row is one line of the sheet: the raw input text and its last classified
// result. Rows are identified by position; the sheet only ever appends,
// removes, or edits in place.
type Row struct {
	Text   string
	Result *Result
}

// Request is one outgoing evaluation call. Seq increases monotonically per
// controller; a response is applied only if its Seq is still the latest.
type Request struct {
	Seq   uint64
	Mode  engine.Mode
	Input string
}

// Apply reports what happened when an evaluation response was applied.
type Apply struct {
	// Stale is true when the response belonged to a superseded request and
	// was discarded without touching any row.
	Stale bool
	// ModeSwitched is true when this response triggered the one-time
	// automatic mode switch; the controller is dirty again and the caller
	// should issue the next request immediately.
	ModeSwitched bool
	// Mode is the active mode after the switch (only meaningful when
	// ModeSwitched is set).
	Mode engine.Mode
	// UnknownSymbols lists missing-definition symbols that did not cause a
	// mode switch, for "did you mean" hints.
	UnknownSymbols []string
}

// Controller owns the ordered row collection, the active evaluation mode with
// its one-shot auto-switch latch, and the request sequence. All methods must
// be called from a single goroutine; structural mutations are never
// interleaved with a half-applied response.
type Controller struct {
	rows        []Row
	mode        engine.Mode
	initialMode engine.Mode
	modeLocked  bool
	seq         uint64
	dirty       bool
}

// NewController builds a sheet with one blank row.
func NewController(mode engine.Mode) *Controller {
	return &Controller{
		rows:        []Row{{}},
		mode:        mode,
		initialMode: mode,
	}
}

// Len returns the row count. Never zero.
func (c *Controller) Len() int { return len(c.rows) }

// Rows returns a snapshot of the row slice for rendering.
func (c *Controller) Rows() []Row {
	out := make([]Row, len(c.rows))
	copy(out, c.rows)
	return out
}

// RowText returns the raw input of row i, or "" when out of range.
func (c *Controller) RowText(i int) string {
	if i < 0 || i >= len(c.rows) {
		return ""
	}
	return c.rows[i].Text
}

// Mode returns the active evaluation mode.
func (c *Controller) Mode() engine.Mode { return c.mode }

// ModeLocked reports whether the one-time automatic switch has happened.
func (c *Controller) ModeLocked() bool { return c.modeLocked }

// Text returns the newline-joined sheet body, the engine's sole input and
// the save format.
func (c *Controller) Text() string {
	parts := make([]string, len(c.rows))
	for i, r := range c.rows {
		parts[i] = r.Text
	}
	return strings.Join(parts, "\n")
}

// EditRow replaces row i's input text and marks the sheet dirty.
// Out-of-range indices are ignored.
func (c *Controller) EditRow(i int, text string) {
	if i < 0 || i >= len(c.rows) {
		return
	}
	if c.rows[i].Text == text {
		return
	}
	c.rows[i].Text = text
	c.dirty = true
}

// AppendRow adds a blank row at the end. The next dirty-triggered evaluation
// picks it up; nothing is forced synchronously.
func (c *Controller) AppendRow() {
	c.rows = append(c.rows, Row{})
	c.dirty = true
}

// EnterAt handles the enter gesture on row i and returns the row that should
// take focus: the freshly appended row when i was last, otherwise i+1.
func (c *Controller) EnterAt(i int) int {
	if i == len(c.rows)-1 {
		c.AppendRow()
	}
	next := i + 1
	if next >= len(c.rows) {
		next = len(c.rows) - 1
	}
	return next
}

// FocusUpFrom returns the row above i. Focus does not wrap; at the top the
// request is a no-op.
func (c *Controller) FocusUpFrom(i int) (int, bool) {
	if i-1 < 0 {
		return i, false
	}
	return i - 1, true
}

// FocusDownFrom returns the row below i. Focus does not wrap.
func (c *Controller) FocusDownFrom(i int) (int, bool) {
	if i+1 >= len(c.rows) {
		return i, false
	}
	return i + 1, true
}

// deleteFocusTarget is the focus policy after a row removal. The widget never
// specified one; the row that moved into the gap's predecessor is the least
// surprising target.
func deleteFocusTarget(i int) int {
	if i-1 < 0 {
		return 0
	}
	return i - 1
}

// DeleteOutFrom removes row i and returns the row that should take focus.
// The last remaining row is never removed; the gesture is then a no-op.
func (c *Controller) DeleteOutFrom(i int) int {
	if len(c.rows) <= 1 || i < 0 || i >= len(c.rows) {
		return 0
	}
	c.rows = append(c.rows[:i], c.rows[i+1:]...)
	c.dirty = true
	return deleteFocusTarget(i)
}

// Load replaces the whole sheet from a text blob (file open, library load).
// An empty blob resets to a single blank row. The mode latch is reopened:
// a loaded sheet starts a fresh lifetime under the configured default mode.
func (c *Controller) Load(blob string) {
	var rows []Row
	if blob != "" {
		for _, line := range strings.Split(blob, "\n") {
			rows = append(rows, Row{Text: line})
		}
	}
	if len(rows) == 0 {
		rows = []Row{{}}
	}
	c.rows = rows
	c.mode = c.initialMode
	c.modeLocked = false
	c.dirty = true
}

// SetMode forces the active mode (library load restores a saved mode).
// It does not touch the latch.
func (c *Controller) SetMode(mode engine.Mode) {
	if c.mode == mode {
		return
	}
	c.mode = mode
	c.dirty = true
}

// NextRequest returns the single evaluation request implied by all edits
// since the last call. Each request supersedes everything before it: the
// returned sequence number is the only one ApplyResult will accept.
func (c *Controller) NextRequest() (Request, bool) {
	if !c.dirty {
		return Request{}, false
	}
	c.dirty = false
	c.seq++
	return Request{Seq: c.seq, Mode: c.mode, Input: c.Text()}, true
}

// ApplyResult distributes a completed evaluation back onto the rows.
// Responses from superseded requests are discarded wholesale. Rows for which
// the response supplies an outcome get a fresh classified result; any
// missing-definition symbol runs the mode detector, and the first suggestion
// that differs from the active mode flips it exactly once per sheet lifetime
// and marks the sheet dirty so the caller re-evaluates under the new mode.
func (c *Controller) ApplyResult(seq uint64, outcomes []engine.RawOutcome) Apply {
	if seq != c.seq {
		return Apply{Stale: true}
	}

	var applied Apply
	for i := range c.rows {
		if i >= len(outcomes) {
			break
		}
		res := Classify(&outcomes[i])
		c.rows[i].Result = res
		if res == nil || res.Err == nil || res.Err.Kind != ErrDefinitionNotFound {
			continue
		}
		symbol := res.Err.Symbol
		suggested, ok := Detect(symbol)
		if ok && suggested != c.mode && !c.modeLocked {
			c.mode = suggested
			c.modeLocked = true
			c.dirty = true
			applied.ModeSwitched = true
			applied.Mode = suggested
			continue
		}
		if !ok {
			applied.UnknownSymbols = append(applied.UnknownSymbols, symbol)
		}
	}
	return applied
}

// ApplyFailure handles a transport-level evaluation failure: stale failures
// are ignored; a current one clears every row result so no stale output is
// left on screen. The sheet stays editable and the next edit retries.
func (c *Controller) ApplyFailure(seq uint64) bool {
	if seq != c.seq {
		return false
	}
	for i := range c.rows {
		c.rows[i].Result = nil
	}
	return true
}
