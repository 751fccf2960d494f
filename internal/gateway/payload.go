package gateway

import (
	"encoding/json"
	"slices"
)

// Mode records which branch of ParsePayload produced a Payload.
type Mode int

const (
	// ModeRaw means the whole body was taken verbatim as script text.
	ModeRaw Mode = iota
	// ModeJSON means the body was a {"steps": ..., "args": [...]} object.
	ModeJSON
)

// String returns "raw" or "json".
func (m Mode) String() string {
	if m == ModeJSON {
		return "json"
	}
	return "raw"
}

// Payload is a parsed POST /run body.
type Payload struct {
	Mode  Mode
	Steps string
	Args  []string
}

// ParsePayload accepts either a JSON object or raw script text.
//
// A JSON object may carry "steps" (string) and "args" (array of strings).
// Missing "args" means defaultArgs; "args": null means no arguments.
// A body that is not a JSON object, or whose fields have the wrong types,
// is treated as raw script text with defaultArgs.
func ParsePayload(body []byte, defaultArgs []string) Payload {
	if p, ok := parseJSONPayload(body, defaultArgs); ok {
		return p
	}
	return Payload{
		Mode:  ModeRaw,
		Steps: string(body),
		Args:  slices.Clone(defaultArgs),
	}
}

func parseJSONPayload(body []byte, defaultArgs []string) (Payload, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return Payload{}, false
	}

	p := Payload{Mode: ModeJSON, Args: slices.Clone(defaultArgs)}

	if raw, ok := fields["steps"]; ok {
		if err := json.Unmarshal(raw, &p.Steps); err != nil {
			return Payload{}, false
		}
	}
	if raw, ok := fields["args"]; ok {
		var args []string
		if err := json.Unmarshal(raw, &args); err != nil {
			return Payload{}, false
		}
		p.Args = args
	}
	return p, true
}
