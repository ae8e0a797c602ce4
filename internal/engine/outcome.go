package engine

import "encoding/json"

// RawOutcome is the untyped per-line result returned by the engine, before
// classification. The wire form is a serde-style tagged union:
//
//	{"Ok": "4"}        success with a display payload
//	{"Ok": null}       blank line, nothing to show
//	{"Err": {...}}     error union, dispatched by the classifier
//
// Shapes matching neither tag are kept verbatim so the classifier can always
// render something.
type RawOutcome struct {
	// OK reports whether the outcome carried the success tag.
	OK bool
	// Value is the success payload; nil for Ok(null).
	Value *string
	// ErrBody is the raw error union when the outcome carried the error tag.
	ErrBody json.RawMessage
	// Raw is the outcome exactly as received.
	Raw json.RawMessage
}

// Ok builds a success outcome. Test helper and eval-subcommand convenience.
func Ok(display string) RawOutcome {
	return RawOutcome{OK: true, Value: &display}
}

// Blank builds an Ok(null) outcome.
func Blank() RawOutcome {
	return RawOutcome{OK: true}
}

// Err builds an error outcome from a pre-encoded error union.
func Err(body string) RawOutcome {
	return RawOutcome{ErrBody: json.RawMessage(body), Raw: json.RawMessage(body)}
}

func (o *RawOutcome) UnmarshalJSON(b []byte) error {
	o.Raw = append(json.RawMessage(nil), b...)

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(b, &tagged); err != nil {
		// Not an object at all; leave Raw for the Unrecognized fallback.
		return nil
	}
	if ok, found := tagged["Ok"]; found {
		o.OK = true
		var v *string
		if err := json.Unmarshal(ok, &v); err == nil {
			o.Value = v
		}
		return nil
	}
	if errBody, found := tagged["Err"]; found {
		o.ErrBody = errBody
	}
	return nil
}

func (o RawOutcome) MarshalJSON() ([]byte, error) {
	if o.OK {
		return json.Marshal(map[string]*string{"Ok": o.Value})
	}
	if len(o.ErrBody) > 0 {
		return json.Marshal(map[string]json.RawMessage{"Err": o.ErrBody})
	}
	if len(o.Raw) > 0 {
		return o.Raw, nil
	}
	return []byte("null"), nil
}
