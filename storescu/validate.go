package storescu

import (
	"log/slog"

	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/types"
)

// Validator checks the identity of an object before it is admitted to a
// transfer list.
type Validator struct {
	Registry *types.Registry
	Logger   *slog.Logger
}

// Validate checks the triple with the built-in dictionary
func Validate(sopClassUID, sopInstanceUID, transferSyntaxUID string, strict bool) error {
	return Validator{}.Validate(sopClassUID, sopInstanceUID, transferSyntaxUID, strict)
}

// Validate rejects empty values. In strict mode every value must also be a
// well-formed UID, a SOP class under the standard root must be known and
// the transfer syntax must be known. Private SOP classes are accepted.
func (v Validator) Validate(sopClassUID, sopInstanceUID, transferSyntaxUID string, strict bool) error {
	switch {
	case sopClassUID == "":
		return dicomerrors.NewValidationError(dicomerrors.EmptySOPClass, "", "")
	case sopInstanceUID == "":
		return dicomerrors.NewValidationError(dicomerrors.EmptySOPInstance, "", "")
	case transferSyntaxUID == "":
		return dicomerrors.NewValidationError(dicomerrors.EmptyTransferSyntax, "", "")
	}
	if !strict {
		return nil
	}

	registry := v.Registry
	if registry == nil {
		registry = types.DefaultRegistry()
	}
	logger := v.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := types.ValidateUID(sopClassUID); err != nil {
		return dicomerrors.NewValidationError(dicomerrors.InvalidSOPClass, sopClassUID, err.Error())
	}
	if _, ok := registry.SOPClass(sopClassUID); !ok {
		if types.IsStandardUID(sopClassUID) {
			return dicomerrors.NewValidationError(dicomerrors.UnknownStandardSOPClass, sopClassUID, "")
		}
		logger.Debug("Accepting private SOP class", "sop_class", sopClassUID)
	}

	if err := types.ValidateUID(sopInstanceUID); err != nil {
		return dicomerrors.NewValidationError(dicomerrors.InvalidSOPInstance, sopInstanceUID, err.Error())
	}

	if err := types.ValidateUID(transferSyntaxUID); err != nil {
		return dicomerrors.NewValidationError(dicomerrors.InvalidTransferSyntax, transferSyntaxUID, err.Error())
	}
	if registry.Category(transferSyntaxUID) == types.CategoryUnknown {
		return dicomerrors.NewValidationError(dicomerrors.UnknownTransferSyntax, transferSyntaxUID, "")
	}
	return nil
}
