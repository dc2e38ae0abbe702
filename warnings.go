package flatxml

import "strings"

// Warning describes a non-fatal condition noticed during conversion.
// Warnings never stop a conversion; they tell the caller the output may
// not be what they expected.
type Warning struct {
	// Code is a short stable identifier, e.g. "no-records".
	Code string
	// Message is a human-readable description.
	Message string
}

// Warning codes.
const (
	// WarnNoRecords means the document root had no repeated child
	// structure, so the root itself was flattened as a single record.
	WarnNoRecords = "no-records"
	// WarnEmptyResult means the conversion produced zero rows.
	WarnEmptyResult = "empty-result"
)

// String returns "code: message".
func (w Warning) String() string {
	return w.Code + ": " + w.Message
}

// FormatWarnings joins warnings into a single semicolon-separated string
// suitable for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
