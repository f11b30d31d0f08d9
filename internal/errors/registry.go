package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Severity Severity
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Scan and Output (E101-E109)
	// ============================================

	"E101": {
		Category: CategoryScan,
		Message:  "API directory unreadable",
		Detail:   "A directory in the API tree could not be scanned. It may be missing or unreadable by the current user. Directory names must be valid UTF-8.",
	},
	"E102": {
		Category: CategoryOutput,
		Message:  "Output write failed",
		Detail:   "The generated file or its parent directory could not be written. Any existing file was left unchanged.",
	},
	"W103": {
		Category: CategoryScan,
		Severity: SeverityWarning,
		Message:  "No API routes found",
		Detail:   "The scan completed without finding a directory containing a marker file. An empty route module was generated.",
	},
	"E104": {
		Category: CategoryOutput,
		Message:  "Generated routes are out of date",
		Detail:   "The output file does not match the routes found in the API directory.",
	},
	"E105": {
		Category: CategoryOutput,
		Message:  "Metrics export failed",
		Detail:   "The metrics textfile could not be written.",
	},

	// ============================================
	// Configuration (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The apiroutes configuration file could not be read or parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is not allowed.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid command-line option",
		Detail:   "A command-line flag has a value that cannot be used.",
	},
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
