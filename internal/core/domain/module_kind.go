package domain

// ModuleKind is the module system of the package that owns a file.
type ModuleKind uint8

const (
	// ModuleKindUnknown means no ancestor package manifest was found.
	ModuleKindUnknown ModuleKind = iota
	// ModuleKindESM means the owning manifest declares "type": "module".
	ModuleKindESM
	// ModuleKindCJS means the owning manifest declares any other type, or none.
	ModuleKindCJS
)

// KindFromESM maps a cached ESM flag to its ModuleKind.
func KindFromESM(isESM bool) ModuleKind {
	if isESM {
		return ModuleKindESM
	}
	return ModuleKindCJS
}

// String returns the lower-case name of the kind.
func (k ModuleKind) String() string {
	switch k {
	case ModuleKindESM:
		return "esm"
	case ModuleKindCJS:
		return "cjs"
	default:
		return "unknown"
	}
}
