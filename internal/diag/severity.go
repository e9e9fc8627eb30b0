package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics; a larger value is more severe.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// MarshalText renders the upper-case name, so JSON carries "ERROR" rather
// than a number.
func (s Severity) MarshalText() ([]byte, error) {
	if int(s) >= len(severityNames) {
		return nil, fmt.Errorf("diag: unknown severity %d", s)
	}
	return []byte(severityNames[s]), nil
}

// UnmarshalText accepts a severity name in any letter case.
func (s *Severity) UnmarshalText(b []byte) error {
	for sev := SevInfo; sev <= SevError; sev++ {
		if strings.EqualFold(severityNames[sev], string(b)) {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("diag: unknown severity %q", b)
}
