package rules

import (
	"fmt"
	"strings"
)

// Severity is how a rule's violations are treated.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity accepts "off", "warn"/"warning", "error" and the numeric
// forms 0, 1, 2.
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "off", "0":
		return SeverityOff, nil
	case "warn", "warning", "1":
		return SeverityWarn, nil
	case "error", "2":
		return SeverityError, nil
	default:
		return SeverityOff, fmt.Errorf("unknown severity %q (valid: off, warn, error)", value)
	}
}
