// Package sheet owns the expression sheet state machine: the ordered row
// collection, result classification, mode detection, and the evaluation
// request/response sequencing that keeps asynchronous engine replies from
// clobbering fresher state.
package sheet

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"mathsheet/internal/engine"
)

// ErrorKind discriminates the classified error variants.
type ErrorKind int

const (
	ErrParse ErrorKind = iota
	ErrEval
	ErrUnit
	ErrDefinitionNotFound
	ErrUnrecognized
)

// ErrorDescriptor is the typed form of a non-success outcome.
type ErrorDescriptor struct {
	Kind     ErrorKind
	Message  string // parse/eval/unit engine message
	Fragment string // offending input fragment (parse only)
	Symbol   string // missing symbol (definition-not-found only)
	Raw      string // verbatim payload (unrecognized only)
}

// Display renders the per-row error text.
func (e *ErrorDescriptor) Display() string {
	switch e.Kind {
	case ErrParse:
		return fmt.Sprintf("%s: '%s'", e.Message, e.Fragment)
	case ErrEval, ErrUnit:
		return e.Message
	case ErrDefinitionNotFound:
		return fmt.Sprintf("Definition not found: '%s'", e.Symbol)
	default:
		return e.Raw
	}
}

// Result is one row's classified outcome. A nil *Result on a row means the
// row has not been computed yet and renders blank.
type Result struct {
	Text string
	Err  *ErrorDescriptor
}

// Display renders the result for the row's output column.
func (r *Result) Display() string {
	if r == nil {
		return ""
	}
	if r.Err != nil {
		return r.Err.Display()
	}
	return r.Text
}

// rawError mirrors the engine's serde error union. Pointer fields so we can
// tell which variant was present; a shape that fits none of them (or breaks
// decoding) degrades to Unrecognized.
type rawError struct {
	ParseError *struct {
		Message string `json:"message"`
		Span    struct {
			Fragment string `json:"fragment"`
		} `json:"span"`
	} `json:"ParseError"`
	EvalError               *string `json:"EvalError"`
	UnitError               *string `json:"UnitError"`
	DefinitionNotFoundError *string `json:"DefinitionNotFoundError"`
}

// Classify maps a raw engine outcome to a display-ready result. It is total:
// any payload shape yields either a success, one of the typed error variants,
// or a verbatim Unrecognized fallback. A nil outcome, and the engine's
// blank-line outcome Ok(null), both map to nil (not yet computed).
func Classify(raw *engine.RawOutcome) *Result {
	if raw == nil {
		return nil
	}
	if raw.OK {
		if raw.Value == nil {
			return nil
		}
		return &Result{Text: SuperscriptExponents(*raw.Value)}
	}
	if len(raw.ErrBody) > 0 {
		var e rawError
		if err := json.Unmarshal(raw.ErrBody, &e); err == nil {
			switch {
			case e.ParseError != nil:
				return &Result{Err: &ErrorDescriptor{
					Kind:     ErrParse,
					Message:  e.ParseError.Message,
					Fragment: e.ParseError.Span.Fragment,
				}}
			case e.EvalError != nil:
				return &Result{Err: &ErrorDescriptor{Kind: ErrEval, Message: *e.EvalError}}
			case e.UnitError != nil:
				return &Result{Err: &ErrorDescriptor{Kind: ErrUnit, Message: *e.UnitError}}
			case e.DefinitionNotFoundError != nil:
				return &Result{Err: &ErrorDescriptor{Kind: ErrDefinitionNotFound, Symbol: *e.DefinitionNotFoundError}}
			}
		}
		return &Result{Err: &ErrorDescriptor{Kind: ErrUnrecognized, Raw: string(raw.ErrBody)}}
	}
	return &Result{Err: &ErrorDescriptor{Kind: ErrUnrecognized, Raw: string(raw.Raw)}}
}

var exponentMarker = regexp.MustCompile(`\^(-?[0-9]+)`)

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'-': '⁻',
}

// SuperscriptExponents rewrites caret exponent markers ("m^3", "s^-2") into
// superscript runes. The output contains no caret-digit sequences, so the
// transform is idempotent.
func SuperscriptExponents(s string) string {
	return exponentMarker.ReplaceAllStringFunc(s, func(m string) string {
		var b strings.Builder
		for _, r := range m[1:] {
			b.WriteRune(superscripts[r])
		}
		return b.String()
	})
}
