package types

import (
	"fmt"
	"strings"
)

// MaxUIDLength is the maximum length of a UI value
const MaxUIDLength = 64

// ValidateUID checks uid against the UI value representation: at most 64
// characters, a single value, dot-separated numeric components and no
// leading zero in a multi-digit component.
func ValidateUID(uid string) error {
	if uid == "" {
		return fmt.Errorf("empty UID")
	}
	if len(uid) > MaxUIDLength {
		return fmt.Errorf("UID exceeds %d characters (%d)", MaxUIDLength, len(uid))
	}
	if strings.Contains(uid, "\\") {
		return fmt.Errorf("UID has more than one value")
	}
	for i, component := range strings.Split(uid, ".") {
		if component == "" {
			return fmt.Errorf("UID component %d is empty", i+1)
		}
		for _, c := range component {
			if c < '0' || c > '9' {
				return fmt.Errorf("UID component %d contains invalid character %q", i+1, c)
			}
		}
		if len(component) > 1 && component[0] == '0' {
			return fmt.Errorf("UID component %d has a leading zero", i+1)
		}
	}
	return nil
}

// IsValidUID reports whether uid passes ValidateUID
func IsValidUID(uid string) bool {
	return ValidateUID(uid) == nil
}
