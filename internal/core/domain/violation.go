package domain

// Violation is a single reported breach of the interop policy.
type Violation struct {
	MessageID MessageID `json:"messageId"`
	Message   string    `json:"message"`
	// Path is the absolute path of the importing file.
	Path string `json:"path"`
	// Source is the raw import specifier of the offending declaration.
	Source string `json:"source"`
	// Specifier is the local binding name of the offending specifier.
	Specifier string   `json:"specifier"`
	Location  Location `json:"location"`
}

// NewViolation builds a violation for the given specifier.
func NewViolation(id MessageID, path string, decl ImportDeclaration, spec Specifier) Violation {
	return Violation{
		MessageID: id,
		Message:   id.Message(),
		Path:      path,
		Source:    decl.Source,
		Specifier: spec.Local,
		Location:  spec.Location,
	}
}

// FileResult is the outcome of linting a single file.
type FileResult struct {
	Path string
	// ContentHash is the hash of the file content the result was computed from.
	ContentHash string
	Violations  []Violation
}
