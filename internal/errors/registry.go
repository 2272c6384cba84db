package errors

import "sort"

// Codes used across the CLI and server.
const (
	CodeConfigNotFound  = "E100"
	CodeConfigInvalid   = "E101"
	CodeVersionInvalid  = "E102"
	CodePortInvalid     = "E103"
	CodeConfigWrite     = "E104"
	CodeMappingLoad     = "E110"
	CodeMappingInvalid  = "E111"
	CodeMappingRemote   = "E112"
	CodeUnknownEffect   = "E120"
	CodePayloadInvalid  = "E121"
	CodeNotEncodable    = "E122"
	CodeServerStart     = "E130"
	CodeTaskRejected    = "E131"
	CodeMissingArgument = "E135"
	CodeFlagCombination = "E136"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E109)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No particlewire.json was found at the given path.",
		DocURL:   "https://particlewire.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid config",
		Detail:   "particlewire.json could not be parsed or has invalid values.",
		DocURL:   "https://particlewire.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid protocol version",
		Detail:   "Versions are written as the minor number (19) or as 1.19, and must be at least 1.8.",
		DocURL:   "https://particlewire.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The server port must be between 1 and 65535.",
		DocURL:   "https://particlewire.dev/docs/errors/E103",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Config write failed",
		Detail:   "The config file could not be written.",
		DocURL:   "https://particlewire.dev/docs/errors/E104",
	},

	// ============================================
	// Mapping Errors (E110-E119)
	// ============================================

	"E110": {
		Category: CategoryMapping,
		Message:  "Mapping table load failed",
		Detail:   "None of the configured mapping sources could be read.",
		DocURL:   "https://particlewire.dev/docs/errors/E110",
	},
	"E111": {
		Category: CategoryMapping,
		Message:  "Invalid mapping table",
		Detail:   "Every record needs a name, a valid version range and at least one entry; records with the same name must not overlap.",
		DocURL:   "https://particlewire.dev/docs/errors/E111",
	},
	"E112": {
		Category: CategoryMapping,
		Message:  "Remote mapping source unreachable",
		Detail:   "The S3 object holding the mapping table could not be fetched.",
		DocURL:   "https://particlewire.dev/docs/errors/E112",
	},

	// ============================================
	// Encoding Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryEncoding,
		Message:  "Unknown effect",
		Detail:   "Effect names are the constant names, e.g. REDSTONE or BLOCK_CRACK.",
		DocURL:   "https://particlewire.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryEncoding,
		Message:  "Invalid payload",
		Detail:   "The payload description is missing fields or names an unknown kind.",
		DocURL:   "https://particlewire.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryEncoding,
		Message:  "Nothing to send",
		Detail:   "The effect or its payload cannot be expressed at this protocol version.",
		DocURL:   "https://particlewire.dev/docs/errors/E122",
	},

	// ============================================
	// Server and CLI Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryServer,
		Message:  "Server failed to start",
		Detail:   "The HTTP listener could not be opened.",
		DocURL:   "https://particlewire.dev/docs/errors/E130",
	},
	"E131": {
		Category: CategoryServer,
		Message:  "Task rejected",
		Detail:   "A task needs at least one packet, an audience and a positive period.",
		DocURL:   "https://particlewire.dev/docs/errors/E131",
	},
	"E135": {
		Category: CategoryCLI,
		Message:  "Missing argument",
		Detail:   "A required argument or flag was not provided.",
		DocURL:   "https://particlewire.dev/docs/errors/E135",
	},
	"E136": {
		Category: CategoryCLI,
		Message:  "Conflicting flags",
		Detail:   "The given flags cannot be used together.",
		DocURL:   "https://particlewire.dev/docs/errors/E136",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
