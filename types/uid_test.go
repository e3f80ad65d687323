package types

import (
	"strings"
	"testing"
)

func TestValidateUID(t *testing.T) {
	tests := []struct {
		name    string
		uid     string
		wantErr bool
	}{
		{"standard", CTImageStorage, false},
		{"single component", "1", false},
		{"zero component", "1.2.0.3", false},
		{"max length", "1." + strings.Repeat("1", MaxUIDLength-2), false},
		{"empty", "", true},
		{"too long", "1." + strings.Repeat("1", MaxUIDLength-1), true},
		{"trailing dot", "1.2.3.", true},
		{"leading dot", ".1.2.3", true},
		{"double dot", "1..2", true},
		{"letters", "1.2.abc", true},
		{"leading zero", "1.02.3", true},
		{"multiple values", "1.2.3\\1.2.4", true},
		{"whitespace", "1.2.3 ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUID(tt.uid)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUID(%q) error = %v, wantErr %v", tt.uid, err, tt.wantErr)
			}
			if IsValidUID(tt.uid) == tt.wantErr {
				t.Errorf("IsValidUID(%q) disagrees with ValidateUID", tt.uid)
			}
		})
	}
}
