package types

import "fmt"

// C-STORE status codes
const (
	StatusStoreRefusedOutOfResources         = 0xA700
	StatusStoreErrorDataSetDoesNotMatchClass = 0xA900
	StatusStoreErrorCannotUnderstand         = 0xC000
	StatusStoreWarningCoercionOfDataElements = 0xB000
	StatusStoreWarningDataSetDoesNotMatch    = 0xB007
	StatusStoreWarningElementsDiscarded      = 0xB006
	StatusProcessingFailure                  = 0x0110
	StatusSOPClassNotSupported               = 0x0122
	StatusNotAuthorized                      = 0x0124
	StatusDuplicateInvocation                = 0x0210
	StatusUnrecognizedOperation              = 0x0211
	StatusMistypedArgument                   = 0x0212
	StatusResourceLimitation                 = 0x0213
	StatusCancel                             = 0xFE00
	StatusPendingWarning                     = 0xFF01
)

// Locally synthesized statuses. They are never sent by a peer and record
// why an object could not be transmitted.
const (
	// StatusNoPresentationContext marks an object for which no acceptable
	// presentation context exists.
	StatusNoPresentationContext = 0xFFF1
	// StatusInvalidDatasetReference marks an in-memory object whose dataset
	// was no longer available at send time.
	StatusInvalidDatasetReference = 0xFFF2
	// StatusLocalError marks an object that failed to load, encode or
	// transcode before transmission.
	StatusLocalError = 0xFFF3
)

// StatusClass is the outcome category of a DIMSE status code
type StatusClass int

const (
	StatusClassSuccess StatusClass = iota
	StatusClassWarning
	StatusClassError
	StatusClassRefused
	StatusClassPending
	StatusClassUnknown
)

func (c StatusClass) String() string {
	switch c {
	case StatusClassSuccess:
		return "success"
	case StatusClassWarning:
		return "warning"
	case StatusClassError:
		return "error"
	case StatusClassRefused:
		return "refused"
	case StatusClassPending:
		return "pending"
	default:
		return "unknown"
	}
}

// ClassifyStatus maps a status code onto its class using the bit patterns
// of the status taxonomy. Pending codes and the locally synthesized codes
// (0xFFF0-0xFFFF) share the pending class.
func ClassifyStatus(status uint16) StatusClass {
	switch {
	case status == StatusSuccess:
		return StatusClassSuccess
	case status == 0x0001 || status == 0x0107 || status == 0x0116 || status&0xF000 == 0xB000:
		return StatusClassWarning
	case status&0xFF00 == 0xA700:
		return StatusClassRefused
	case status&0xFF00 == 0xA900 || status&0xF000 == 0xC000:
		return StatusClassError
	case status&0xFF00 == 0x0100 || status&0xFF00 == 0x0200 || status == StatusCancel:
		return StatusClassError
	case status == StatusPending || status == StatusPendingWarning || status >= 0xFFF0:
		return StatusClassPending
	default:
		return StatusClassUnknown
	}
}

// IsLocalStatus reports whether status was synthesized locally
func IsLocalStatus(status uint16) bool {
	return status >= 0xFFF0
}

// IsAcceptableStoreStatus reports whether a C-STORE outcome lets a transfer
// continue under a halt-on-failure policy.
func IsAcceptableStoreStatus(status uint16) bool {
	class := ClassifyStatus(status)
	return class == StatusClassSuccess || class == StatusClassWarning
}

// StatusString renders a status code for reports
func StatusString(status uint16) string {
	switch status {
	case StatusSuccess:
		return "Success"
	case StatusStoreWarningCoercionOfDataElements:
		return "Warning: Coercion of data elements"
	case StatusStoreWarningElementsDiscarded:
		return "Warning: Elements discarded"
	case StatusStoreWarningDataSetDoesNotMatch:
		return "Warning: Data set does not match SOP class"
	case StatusProcessingFailure:
		return "Failure: Processing failure"
	case StatusSOPClassNotSupported:
		return "Failure: SOP class not supported"
	case StatusNotAuthorized:
		return "Failure: Not authorized"
	case StatusDuplicateInvocation:
		return "Failure: Duplicate invocation"
	case StatusUnrecognizedOperation:
		return "Failure: Unrecognized operation"
	case StatusMistypedArgument:
		return "Failure: Mistyped argument"
	case StatusResourceLimitation:
		return "Failure: Resource limitation"
	case StatusCancel:
		return "Cancel"
	case StatusNoPresentationContext:
		return "Not sent: no acceptable presentation context"
	case StatusInvalidDatasetReference:
		return "Not sent: invalid dataset reference"
	case StatusLocalError:
		return "Not sent: local error"
	}

	switch ClassifyStatus(status) {
	case StatusClassWarning:
		return fmt.Sprintf("Warning (0x%04X)", status)
	case StatusClassRefused:
		return fmt.Sprintf("Refused: Out of resources (0x%04X)", status)
	case StatusClassError:
		if status&0xFF00 == 0xA900 {
			return fmt.Sprintf("Error: Data set does not match SOP class (0x%04X)", status)
		}
		if status&0xF000 == 0xC000 {
			return fmt.Sprintf("Error: Cannot understand (0x%04X)", status)
		}
		return fmt.Sprintf("Failure (0x%04X)", status)
	case StatusClassPending:
		return fmt.Sprintf("Pending (0x%04X)", status)
	default:
		return fmt.Sprintf("Unknown status (0x%04X)", status)
	}
}
