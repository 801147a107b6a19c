package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Config Errors (F100-F119)
	// ============================================

	"F100": {
		Category: CategoryConfig,
		Message:  "Invalid feedback.json",
		Detail:   "The feedback.json configuration file is malformed.",
	},
	"F101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No feedback.json exists at the given path.",
	},
	"F102": {
		Category: CategoryConfig,
		Message:  "Invalid port number",
		Detail:   "The configured port must be between 1 and 65535.",
	},
	"F103": {
		Category: CategoryConfig,
		Message:  "Invalid path",
		Detail:   "Endpoint paths must start with '/'.",
	},

	// ============================================
	// Request Errors (F120-F139)
	// ============================================

	"F120": {
		Category: CategoryRequest,
		Message:  "Malformed request body",
		Detail:   "The request body is not valid JSON.",
	},
	"F121": {
		Category: CategoryRequest,
		Message:  "Missing title",
		Detail:   "A toast needs a title.",
	},
	"F122": {
		Category: CategoryRequest,
		Message:  "Unknown level",
		Detail:   "Level must be one of success, error, info or warning.",
	},

	// ============================================
	// Server Errors (F140-F159)
	// ============================================

	"F140": {
		Category: CategoryServer,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped unexpectedly.",
	},
	"F141": {
		Category: CategoryServer,
		Message:  "Sentry initialization failed",
		Detail:   "The Sentry client could not be created from the configured DSN.",
	},
}
