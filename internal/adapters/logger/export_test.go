// export_test.go exports private functions for white-box testing.
package logger

// FormatErrorEntries is exported for testing.
var FormatErrorEntries = formatErrorEntries

// CollectErrorEntries returns the rendered entries of err's chain.
func CollectErrorEntries(err error) []string {
	entries := collectErrorEntries(err)
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.String())
	}
	return out
}

// ErrorEntry is one rendered link of an error chain.
type ErrorEntry = errorEntry

// NewErrorEntry builds an entry for FormatErrorEntries.
func NewErrorEntry(msg string, meta map[string]any) ErrorEntry {
	return errorEntry{msg: msg, meta: meta}
}
