package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// parseSeverity maps the tsc severity word to a Severity.
// Unknown words come back as SevError: tsc prints almost nothing else.
func parseSeverity(word string) Severity {
	switch word {
	case "info", "message", "suggestion":
		return SevInfo
	case "warning":
		return SevWarning
	default:
		return SevError
	}
}
