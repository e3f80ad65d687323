// Package errors provides the error types shared by the association layer
// and the storage transfer engine.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrConnectionClosed    = errors.New("dicom: connection closed")
	ErrAssociationRejected = errors.New("dicom: association rejected")
	ErrInvalidPDU          = errors.New("dicom: invalid PDU")
	ErrUnsupportedTransfer = errors.New("dicom: unsupported transfer syntax")
	ErrNoPresentationCtx   = errors.New("dicom: no suitable presentation context")
	ErrInvalidMessage      = errors.New("dicom: invalid DIMSE message")
	ErrOperationCanceled   = errors.New("dicom: operation canceled")

	ErrNothingNegotiated = errors.New("dicom: no presentation context was accepted")
	ErrUnsuccessfulStore = errors.New("dicom: store was not successful")
	ErrEntryNotFound     = errors.New("dicom: transfer entry not found")
	ErrNotOpen           = errors.New("dicom: association is not open")
	ErrTooManyContexts   = errors.New("dicom: presentation context limit reached")
)

// AssociationError represents an association-level error
type AssociationError struct {
	Reason AssociationRejectReason
	Source AssociationRejectSource
	Msg    string
}

func (e *AssociationError) Error() string {
	return fmt.Sprintf("association rejected: %s (source: %s, reason: %s)",
		e.Msg, e.Source, e.Reason)
}

func (e *AssociationError) Unwrap() error {
	return ErrAssociationRejected
}

// AssociationRejectReason represents why an association was rejected
type AssociationRejectReason byte

const (
	RejectReasonUnknown                        AssociationRejectReason = 0x00
	RejectReasonNoReasonGiven                  AssociationRejectReason = 0x01
	RejectReasonApplicationContextNotSupported AssociationRejectReason = 0x02
	RejectReasonCallingAETitleNotRecognized    AssociationRejectReason = 0x03
	RejectReasonCalledAETitleNotRecognized     AssociationRejectReason = 0x07
	RejectReasonTemporaryCongestion            AssociationRejectReason = 0x12
	RejectReasonLocalLimitExceeded             AssociationRejectReason = 0x13
)

func (r AssociationRejectReason) String() string {
	switch r {
	case RejectReasonNoReasonGiven:
		return "no-reason-given"
	case RejectReasonApplicationContextNotSupported:
		return "application-context-not-supported"
	case RejectReasonCallingAETitleNotRecognized:
		return "calling-ae-title-not-recognized"
	case RejectReasonCalledAETitleNotRecognized:
		return "called-ae-title-not-recognized"
	case RejectReasonTemporaryCongestion:
		return "temporary-congestion"
	case RejectReasonLocalLimitExceeded:
		return "local-limit-exceeded"
	default:
		return "unknown"
	}
}

// AssociationRejectSource represents who rejected the association
type AssociationRejectSource byte

const (
	RejectSourceUnknown                     AssociationRejectSource = 0x00
	RejectSourceServiceUser                 AssociationRejectSource = 0x01
	RejectSourceServiceProviderACSE         AssociationRejectSource = 0x02
	RejectSourceServiceProviderPresentation AssociationRejectSource = 0x03
)

func (s AssociationRejectSource) String() string {
	switch s {
	case RejectSourceServiceUser:
		return "service-user"
	case RejectSourceServiceProviderACSE:
		return "service-provider-acse"
	case RejectSourceServiceProviderPresentation:
		return "service-provider-presentation"
	default:
		return "unknown"
	}
}

// NewAssociationError creates a new association error
func NewAssociationError(source AssociationRejectSource, reason AssociationRejectReason, msg string) *AssociationError {
	return &AssociationError{
		Source: source,
		Reason: reason,
		Msg:    msg,
	}
}

// DIMSEError represents a DIMSE operation error with status code
type DIMSEError struct {
	Status    uint16
	Operation string
	Msg       string
}

func (e *DIMSEError) Error() string {
	return fmt.Sprintf("DIMSE %s failed: %s (status: 0x%04X)", e.Operation, e.Msg, e.Status)
}

// NewDIMSEError creates a new DIMSE error
func NewDIMSEError(operation string, status uint16, msg string) *DIMSEError {
	return &DIMSEError{
		Operation: operation,
		Status:    status,
		Msg:       msg,
	}
}

// IsSuccess returns true if the DIMSE status indicates success
func (e *DIMSEError) IsSuccess() bool {
	return e.Status == 0x0000
}

// IsPending returns true if the DIMSE status indicates pending
func (e *DIMSEError) IsPending() bool {
	return e.Status == 0xFF00 || e.Status == 0xFF01
}

// IsWarning returns true if the DIMSE status indicates a warning
func (e *DIMSEError) IsWarning() bool {
	return e.Status == 0x0001 || e.Status == 0x0107 || e.Status == 0x0116 || (e.Status&0xF000) == 0xB000
}

// IsFailure returns true if the DIMSE status indicates failure
func (e *DIMSEError) IsFailure() bool {
	switch {
	case e.IsSuccess(), e.IsPending(), e.IsWarning():
		return false
	case (e.Status & 0xF000) == 0xC000, (e.Status & 0xF000) == 0xA000:
		return true
	case (e.Status & 0xFF00) == 0x0100, (e.Status & 0xFF00) == 0x0200:
		return true
	}
	return e.Status == 0xFE00
}

// Unwrap lets errors.Is match ErrUnsuccessfulStore for failed stores
func (e *DIMSEError) Unwrap() error {
	if e.Operation == "C-STORE" && !e.IsSuccess() && !e.IsWarning() {
		return ErrUnsuccessfulStore
	}
	return nil
}

// TimeoutError represents a timeout error
type TimeoutError struct {
	Operation string
	Duration  string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout: %s exceeded %s", e.Operation, e.Duration)
}

func (e *TimeoutError) Timeout() bool {
	return true
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation, duration string) *TimeoutError {
	return &TimeoutError{
		Operation: operation,
		Duration:  duration,
	}
}

// NetworkError represents a network-level error
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new network error
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{
		Op:  op,
		Err: err,
	}
}

// PDUError represents a PDU-level protocol error
type PDUError struct {
	PDUType byte
	Msg     string
}

func (e *PDUError) Error() string {
	return fmt.Sprintf("PDU error (type: 0x%02X): %s", e.PDUType, e.Msg)
}

// NewPDUError creates a new PDU error
func NewPDUError(pduType byte, msg string) *PDUError {
	return &PDUError{
		PDUType: pduType,
		Msg:     msg,
	}
}

// AbortError represents an A-ABORT PDU received
type AbortError struct {
	Source byte
	Reason byte
}

func (e *AbortError) Error() string {
	sourceStr := "unknown"
	if e.Source == 0x00 {
		sourceStr = "service-user"
	} else if e.Source == 0x02 {
		sourceStr = "service-provider"
	}

	return fmt.Sprintf("connection aborted by %s (reason: 0x%02X)", sourceStr, e.Reason)
}

// NewAbortError creates a new abort error
func NewAbortError(source, reason byte) *AbortError {
	return &AbortError{
		Source: source,
		Reason: reason,
	}
}

// ValidationCode identifies why an object was refused admission to a transfer list
type ValidationCode int

const (
	EmptySOPClass ValidationCode = iota + 1
	EmptySOPInstance
	EmptyTransferSyntax
	InvalidSOPClass
	InvalidSOPInstance
	InvalidTransferSyntax
	UnknownStandardSOPClass
	UnknownTransferSyntax
)

func (c ValidationCode) String() string {
	switch c {
	case EmptySOPClass:
		return "empty SOP class UID"
	case EmptySOPInstance:
		return "empty SOP instance UID"
	case EmptyTransferSyntax:
		return "empty transfer syntax UID"
	case InvalidSOPClass:
		return "invalid SOP class UID"
	case InvalidSOPInstance:
		return "invalid SOP instance UID"
	case InvalidTransferSyntax:
		return "invalid transfer syntax UID"
	case UnknownStandardSOPClass:
		return "unknown standard SOP class UID"
	case UnknownTransferSyntax:
		return "unknown transfer syntax UID"
	default:
		return "validation failed"
	}
}

// ValidationError reports an identity or encoding string that failed admission checks
type ValidationError struct {
	Code   ValidationCode
	Value  string
	Detail string
}

func (e *ValidationError) Error() string {
	msg := e.Code.String()
	if e.Value != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Value)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// NewValidationError creates a new validation error
func NewValidationError(code ValidationCode, value, detail string) *ValidationError {
	return &ValidationError{Code: code, Value: value, Detail: detail}
}

// IsValidationCode reports whether err is a ValidationError with the given code
func IsValidationCode(err error, code ValidationCode) bool {
	var verr *ValidationError
	return errors.As(err, &verr) && verr.Code == code
}

// UnsupportedEncodingError reports a transfer syntax that cannot be offered
// on any presentation context.
type UnsupportedEncodingError struct {
	TransferSyntax string
	SOPInstanceUID string
	Reason         string
}

func (e *UnsupportedEncodingError) Error() string {
	if e.SOPInstanceUID != "" {
		return fmt.Sprintf("unsupported encoding %s for %s: %s", e.TransferSyntax, e.SOPInstanceUID, e.Reason)
	}
	return fmt.Sprintf("unsupported encoding %s: %s", e.TransferSyntax, e.Reason)
}

func (e *UnsupportedEncodingError) Unwrap() error {
	return ErrUnsupportedTransfer
}

// NewUnsupportedEncodingError creates a new unsupported encoding error
func NewUnsupportedEncodingError(transferSyntax, sopInstanceUID, reason string) *UnsupportedEncodingError {
	return &UnsupportedEncodingError{
		TransferSyntax: transferSyntax,
		SOPInstanceUID: sopInstanceUID,
		Reason:         reason,
	}
}

// IsFatal reports whether err ends a whole transfer job rather than one
// object or one session.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var (
		netErr     *NetworkError
		abortErr   *AbortError
		timeoutErr *TimeoutError
		pduErr     *PDUError
	)
	return errors.As(err, &netErr) || errors.As(err, &abortErr) ||
		errors.As(err, &timeoutErr) || errors.As(err, &pduErr) ||
		errors.Is(err, ErrConnectionClosed)
}
