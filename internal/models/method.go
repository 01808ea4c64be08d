package models

import "fmt"

// SplitMethod is the algorithm used to derive per-participant shares from an
// expense total.
type SplitMethod int

const (
	// Equal divides the total uniformly among all participants.
	Equal SplitMethod = iota
	// Exact takes each participant's share verbatim from caller input.
	Exact
	// Percentage derives each share from a caller-supplied percentage of
	// the total.
	Percentage
)

var methodNames = map[SplitMethod]string{
	Equal:      "EQUAL",
	Exact:      "EXACT",
	Percentage: "PERCENTAGE",
}

var methodValues = map[string]SplitMethod{
	"EQUAL":      Equal,
	"EXACT":      Exact,
	"PERCENTAGE": Percentage,
}

// String returns the canonical record tag for the method.
func (m SplitMethod) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SplitMethod(%d)", int(m))
}

// ParseSplitMethod decodes a record tag into a SplitMethod. An unrecognized
// tag is an error, never a fallback: a record carrying one is malformed and
// must be rejected rather than silently reinterpreted as an equal split.
func ParseSplitMethod(tag string) (SplitMethod, error) {
	if m, ok := methodValues[tag]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: unknown split method %q", ErrMalformedRecord, tag)
}
