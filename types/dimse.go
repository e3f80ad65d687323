package types

// DIMSE Command types
const (
	CStoreRQ  = 0x0001
	CStoreRSP = 0x8001
	CEchoRQ   = 0x0030
	CEchoRSP  = 0x8030
)

// DIMSE Status codes
const (
	StatusSuccess = 0x0000
	StatusPending = 0xFF00
	StatusFailure = 0xC000
)

// Command Data Set Type values
const (
	DataSetPresent = 0x0000
	NoDataSet      = 0x0101
)

// Priority values for (0000,0700)
const (
	PriorityMedium = 0x0000
	PriorityHigh   = 0x0001
	PriorityLow    = 0x0002
)

// Message represents a parsed DIMSE command
type Message struct {
	CommandField              uint16
	MessageID                 uint16
	AffectedSOPClassUID       string
	AffectedSOPInstanceUID    string
	Priority                  uint16
	CommandDataSetType        uint16
	Status                    uint16
	MessageIDBeingRespondedTo uint16
	ErrorComment              string

	// Set on a C-STORE-RQ issued as a C-MOVE sub-operation
	MoveOriginatorAETitle   string
	MoveOriginatorMessageID uint16
}

// ResponseCommandFor maps a DIMSE request command to its corresponding response command.
func ResponseCommandFor(request uint16) uint16 {
	switch request {
	case CStoreRQ:
		return CStoreRSP
	case CEchoRQ:
		return CEchoRSP
	default:
		return request | 0x8000
	}
}
