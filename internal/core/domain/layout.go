package domain

const (
	// ManifestFileName is the name of the package manifest file.
	ManifestFileName = "package.json"

	// ConfigFileName is the name of the cjsguard configuration file.
	ConfigFileName = ".cjsguard.yaml"

	// NodeModulesDirName is the directory searched for bare import specifiers.
	NodeModulesDirName = "node_modules"

	// ESMTypeMarker is the manifest "type" value that declares an ESM package.
	ESMTypeMarker = "module"

	// BuiltinPrefix is the specifier prefix of Node.js built-in modules.
	BuiltinPrefix = "node:"

	// FilePerm is the default permission for files written by cjsguard (rw-r--r--).
	FilePerm = 0o644
)
