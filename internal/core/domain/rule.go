package domain

// MessageID identifies a kind of policy violation.
type MessageID string

const (
	// MsgBadDestructure flags named imports from a CJS module in an ESM file.
	MsgBadDestructure MessageID = "badDestructure"
	// MsgBadNamespace flags namespace imports from a CJS module in an ESM file.
	MsgBadNamespace MessageID = "badNamespace"
)

const (
	// RuleName is the name of the interop rule.
	RuleName = "no-bad-cjs-imports"
	// PluginName is the name reported alongside findings.
	PluginName = "cjsguard"
)

// RuleMessages maps each message id to its human readable text.
var RuleMessages = map[MessageID]string{
	MsgBadDestructure: "Do not destructure CJS imports in ESM files. Use default imports.",
	MsgBadNamespace:   "Do not import CJS namespaces in ESM files. Use default imports.",
}

// Message returns the human readable text of the id.
func (id MessageID) Message() string {
	return RuleMessages[id]
}
