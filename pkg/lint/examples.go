package lint

import "strings"

// ViolationMarker marks an expected violation position in a triggering example.
const ViolationMarker = "↓"

// CorrectionExample pairs input with its corrected form. Before may carry markers.
type CorrectionExample struct {
	Before string
	After  string
}

// Examples document a rule with sample code and double as its test cases.
type Examples struct {
	NonTriggering []string
	Triggering    []string
	Corrections   []CorrectionExample
}

// ExampleProvider is implemented by rules that ship examples.
type ExampleProvider interface {
	Examples() Examples
}

// StripMarkers removes every ViolationMarker from s and returns the byte
// offsets, in the stripped text, where they stood.
func StripMarkers(s string) (string, []int) {
	var (
		sb      strings.Builder
		offsets []int
	)
	for {
		i := strings.Index(s, ViolationMarker)
		if i < 0 {
			sb.WriteString(s)
			return sb.String(), offsets
		}
		sb.WriteString(s[:i])
		offsets = append(offsets, sb.Len())
		s = s[i+len(ViolationMarker):]
	}
}
