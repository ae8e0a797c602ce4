package sheet

import (
	"testing"

	"mathsheet/internal/engine"
)

func TestClassifySuccess(t *testing.T) {
	out := engine.Ok("4")
	res := Classify(&out)
	if res == nil || res.Err != nil {
		t.Fatalf("expected success result, got %+v", res)
	}
	if res.Text != "4" {
		t.Fatalf("Text = %q, want %q", res.Text, "4")
	}
}

func TestClassifyBlankLine(t *testing.T) {
	out := engine.Blank()
	if res := Classify(&out); res != nil {
		t.Fatalf("Ok(null) should classify to nil, got %+v", res)
	}
	if res := Classify(nil); res != nil {
		t.Fatalf("nil outcome should classify to nil, got %+v", res)
	}
}

func TestClassifyAppliesSuperscripts(t *testing.T) {
	out := engine.Ok("12 m^3")
	res := Classify(&out)
	if res == nil || res.Text != "12 m³" {
		t.Fatalf("got %+v, want text %q", res, "12 m³")
	}
}

func TestClassifyParseError(t *testing.T) {
	out := engine.Err(`{"ParseError":{"message":"Unexpected token","span":{"fragment":"+*"}}}`)
	res := Classify(&out)
	if res == nil || res.Err == nil {
		t.Fatalf("expected error result, got %+v", res)
	}
	if res.Err.Kind != ErrParse {
		t.Fatalf("Kind = %d, want ErrParse", res.Err.Kind)
	}
	if got := res.Err.Display(); got != "Unexpected token: '+*'" {
		t.Fatalf("Display() = %q", got)
	}
}

func TestClassifyEvalAndUnitErrors(t *testing.T) {
	cases := []struct {
		body string
		kind ErrorKind
		want string
	}{
		{`{"EvalError":"Division by zero"}`, ErrEval, "Division by zero"},
		{`{"UnitError":"Incompatible units: m and s"}`, ErrUnit, "Incompatible units: m and s"},
	}
	for _, tc := range cases {
		out := engine.Err(tc.body)
		res := Classify(&out)
		if res == nil || res.Err == nil || res.Err.Kind != tc.kind {
			t.Fatalf("body %s: got %+v", tc.body, res)
		}
		if got := res.Err.Display(); got != tc.want {
			t.Fatalf("body %s: Display() = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestClassifyDefinitionNotFound(t *testing.T) {
	out := engine.Err(`{"DefinitionNotFoundError":"kg"}`)
	res := Classify(&out)
	if res == nil || res.Err == nil || res.Err.Kind != ErrDefinitionNotFound {
		t.Fatalf("got %+v", res)
	}
	if res.Err.Symbol != "kg" {
		t.Fatalf("Symbol = %q, want %q", res.Err.Symbol, "kg")
	}
	if got := res.Err.Display(); got != "Definition not found: 'kg'" {
		t.Fatalf("Display() = %q", got)
	}
}

func TestClassifyUnrecognizedShapes(t *testing.T) {
	// Unknown variant names, non-union bodies, and non-object outcomes all
	// fall through to a verbatim rendering rather than a panic or a blank.
	cases := []string{
		`{"OverflowError":"too big"}`,
		`"whoops"`,
		`42`,
	}
	for _, body := range cases {
		out := engine.Err(body)
		res := Classify(&out)
		if res == nil || res.Err == nil {
			t.Fatalf("body %s: expected error result, got %+v", body, res)
		}
		if res.Err.Kind != ErrUnrecognized {
			t.Fatalf("body %s: Kind = %d, want ErrUnrecognized", body, res.Err.Kind)
		}
		if res.Err.Display() != body {
			t.Fatalf("body %s: Display() = %q", body, res.Err.Display())
		}
	}
}

func TestSuperscriptExponents(t *testing.T) {
	cases := []struct{ in, want string }{
		{"m^3", "m³"},
		{"s^-2", "s⁻²"},
		{"kg m^2 s^-2", "kg m² s⁻²"},
		{"2^10", "2¹⁰"},
		{"no exponent here", "no exponent here"},
		{"dangling ^", "dangling ^"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SuperscriptExponents(tc.in); got != tc.want {
			t.Fatalf("SuperscriptExponents(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSuperscriptExponentsIdempotent(t *testing.T) {
	once := SuperscriptExponents("kg m^2 s^-2")
	twice := SuperscriptExponents(once)
	if once != twice {
		t.Fatalf("second pass changed output: %q -> %q", once, twice)
	}
}

func TestResultDisplayNil(t *testing.T) {
	var r *Result
	if got := r.Display(); got != "" {
		t.Fatalf("nil result Display() = %q, want empty", got)
	}
}
