package storescu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/types"
)

func TestValidate(t *testing.T) {
	const instance = "1.2.826.0.1.3680043.2.1125.1"

	tests := []struct {
		name     string
		class    string
		instance string
		syntax   string
		strict   bool
		want     dicomerrors.ValidationCode
	}{
		{"valid CT", types.CTImageStorage, instance, types.ExplicitVRLittleEndian, true, 0},
		{"empty class strict", "", instance, types.ExplicitVRLittleEndian, true, dicomerrors.EmptySOPClass},
		{"empty class lenient", "", instance, types.ExplicitVRLittleEndian, false, dicomerrors.EmptySOPClass},
		{"empty instance", types.CTImageStorage, "", types.ExplicitVRLittleEndian, false, dicomerrors.EmptySOPInstance},
		{"empty syntax", types.CTImageStorage, instance, "", false, dicomerrors.EmptyTransferSyntax},
		{"malformed class", "1.2.abc", instance, types.ExplicitVRLittleEndian, true, dicomerrors.InvalidSOPClass},
		{"malformed class lenient", "1.2.abc", instance, types.ExplicitVRLittleEndian, false, 0},
		{"malformed instance", types.CTImageStorage, "1.02.3", types.ExplicitVRLittleEndian, true, dicomerrors.InvalidSOPInstance},
		{"malformed syntax", types.CTImageStorage, instance, "1.2..3", true, dicomerrors.InvalidTransferSyntax},
		{"unknown standard class", "1.2.840.10008.5.1.4.1.1.9999", instance, types.ExplicitVRLittleEndian, true, dicomerrors.UnknownStandardSOPClass},
		{"private class", "1.3.6.1.4.1.9590.100.1.2.1", instance, types.ExplicitVRLittleEndian, true, 0},
		{"unknown syntax strict", types.CTImageStorage, instance, "1.2.3.4.5.6", true, dicomerrors.UnknownTransferSyntax},
		{"unknown syntax lenient", types.CTImageStorage, instance, "1.2.3.4.5.6", false, 0},
		{"compressed syntax", types.CTImageStorage, instance, types.JPEGBaseline8Bit, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validator{Logger: quietLogger}.Validate(tt.class, tt.instance, tt.syntax, tt.strict)
			if tt.want == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, dicomerrors.IsValidationCode(err, tt.want), "got %v", err)
		})
	}
}

func TestValidate_CustomRegistry(t *testing.T) {
	registry := types.NewRegistry()
	registry.RegisterTransferSyntax(types.TransferSyntaxInfo{
		UID:      "1.2.3.4.5.6",
		Name:     "Private Lossless",
		Category: types.CategoryLossless,
	})

	v := Validator{Registry: registry, Logger: quietLogger}
	assert.NoError(t, v.Validate(types.CTImageStorage, "1.2.3", "1.2.3.4.5.6", true))

	err := Validate(types.CTImageStorage, "1.2.3", "1.2.3.4.5.6", true)
	assert.True(t, dicomerrors.IsValidationCode(err, dicomerrors.UnknownTransferSyntax))
}
