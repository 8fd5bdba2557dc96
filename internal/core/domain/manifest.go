package domain

// Manifest holds the package.json fields cjsguard cares about.
type Manifest struct {
	// Type is the declared module system. Only ESMTypeMarker means ESM.
	Type string `json:"type"`
	// Module is the alternate ESM entry point used by bundlers.
	Module string `json:"module"`
	// Main is the classic entry point.
	Main string `json:"main"`
}

// IsESM reports whether the manifest declares an ESM package.
func (m Manifest) IsESM() bool {
	return m.Type == ESMTypeMarker
}

// EntryPoint returns the module entry if present, otherwise main.
// It returns an empty string when neither is declared.
func (m Manifest) EntryPoint() string {
	if m.Module != "" {
		return m.Module
	}
	return m.Main
}
