package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestRead is returned when a package manifest exists but cannot be read.
	ErrManifestRead = zerr.New("failed to read package manifest")

	// ErrManifestParse is returned when a package manifest is not valid JSON.
	ErrManifestParse = zerr.New("failed to parse package manifest")

	// ErrUnresolvedImport is returned when an import specifier does not resolve to an existing file.
	ErrUnresolvedImport = zerr.New("unable to resolve import path")

	// ErrNoEntryPoint is returned when a package directory is imported but its manifest declares neither module nor main.
	ErrNoEntryPoint = zerr.New("no package entry point found")

	// ErrEntryPointMissing is returned when a package entry point does not exist on disk.
	ErrEntryPointMissing = zerr.New("package entry point does not exist")

	// ErrUnexpectedSpecifier is returned when an import specifier has an unrecognised shape.
	ErrUnexpectedSpecifier = zerr.New("unexpected import specifier type")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the config file contains invalid values.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrSourceReadFailed is returned when a source file cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read source file")

	// ErrSourceParse is returned when an import declaration cannot be parsed.
	ErrSourceParse = zerr.New("failed to parse import declaration")

	// ErrWalkFailed is returned when a lint root cannot be walked.
	ErrWalkFailed = zerr.New("failed to walk lint root")

	// ErrBaselineReadFailed is returned when the baseline file cannot be read.
	ErrBaselineReadFailed = zerr.New("failed to read baseline")

	// ErrBaselineParseFailed is returned when the baseline file is not valid TOML.
	ErrBaselineParseFailed = zerr.New("failed to parse baseline")

	// ErrBaselineWriteFailed is returned when the baseline file cannot be written.
	ErrBaselineWriteFailed = zerr.New("failed to write baseline")

	// ErrReportFailed is returned when findings cannot be written to the output.
	ErrReportFailed = zerr.New("failed to write report")

	// ErrUnknownFormat is returned when an unsupported report format is requested.
	ErrUnknownFormat = zerr.New("unknown report format, expected 'text' or 'json'")

	// ErrAnalysisFailed is returned when one or more files could not be analyzed.
	ErrAnalysisFailed = zerr.New("analysis failed")

	// ErrViolationsFound is returned when the lint run reported at least one violation.
	ErrViolationsFound = zerr.New("cjs import violations found")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start file watcher")
)
