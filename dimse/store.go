package dimse

import (
	"encoding/binary"
	"fmt"
	"io"

	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/pdu"
	"github.com/caio-sobreiro/dicomsend/types"
)

// DefaultMaxPDULength is used when the peer announces no limit
const DefaultMaxPDULength = 16384

// CStoreRequest represents a C-STORE request
type CStoreRequest struct {
	SOPClassUID    string
	SOPInstanceUID string
	Data           []byte
	MessageID      uint16
	Priority       uint16

	// Set when the store is a sub-operation of a C-MOVE
	MoveOriginatorAETitle   string
	MoveOriginatorMessageID uint16
}

// CStoreResponse represents a C-STORE response
type CStoreResponse struct {
	Status         uint16
	MessageID      uint16
	SOPClassUID    string
	SOPInstanceUID string
	ErrorComment   string
}

// Connection interface for sending/receiving DICOM data
type Connection interface {
	io.ReadWriter
}

// SendCStore sends a C-STORE request and waits for response
func SendCStore(conn Connection, presContextID byte, maxPDULength uint32, req *CStoreRequest) (*CStoreResponse, error) {
	command := &types.Message{
		CommandField:            types.CStoreRQ,
		MessageID:               req.MessageID,
		Priority:                req.Priority,
		CommandDataSetType:      types.DataSetPresent,
		AffectedSOPClassUID:     req.SOPClassUID,
		AffectedSOPInstanceUID:  req.SOPInstanceUID,
		MoveOriginatorAETitle:   req.MoveOriginatorAETitle,
		MoveOriginatorMessageID: req.MoveOriginatorMessageID,
	}

	commandData, err := EncodeCommand(command)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}

	data := req.Data
	if data == nil {
		data = []byte{}
	}
	if err := SendDIMSEMessage(conn, presContextID, maxPDULength, commandData, data); err != nil {
		return nil, fmt.Errorf("failed to send C-STORE: %w", err)
	}

	msg, _, err := ReceiveDIMSEMessage(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to receive C-STORE-RSP: %w", err)
	}

	if msg.CommandField != types.CStoreRSP {
		return nil, fmt.Errorf("%w: unexpected command 0x%04x (expected C-STORE-RSP)",
			dicomerrors.ErrInvalidMessage, msg.CommandField)
	}
	if msg.MessageIDBeingRespondedTo != req.MessageID {
		return nil, fmt.Errorf("%w: response to message %d, expected %d",
			dicomerrors.ErrInvalidMessage, msg.MessageIDBeingRespondedTo, req.MessageID)
	}

	return &CStoreResponse{
		Status:         msg.Status,
		MessageID:      msg.MessageIDBeingRespondedTo,
		SOPClassUID:    msg.AffectedSOPClassUID,
		SOPInstanceUID: msg.AffectedSOPInstanceUID,
		ErrorComment:   msg.ErrorComment,
	}, nil
}

// SendDIMSEMessage sends a DIMSE message with optional dataset
func SendDIMSEMessage(conn Connection, presContextID byte, maxPDULength uint32, commandData []byte, datasetData []byte) error {
	if err := SendPDataTF(conn, presContextID, maxPDULength, commandData, true, true); err != nil {
		return err
	}

	if datasetData != nil {
		if err := SendPDataTF(conn, presContextID, maxPDULength, datasetData, false, true); err != nil {
			return err
		}
	}

	return nil
}

// SendPDataTF sends data as one or more P-DATA-TF PDUs, each carrying a
// single PDV that fits the peer's maximum PDU length. Empty data still
// produces one PDV so that the last-fragment flag reaches the peer.
func SendPDataTF(conn Connection, presContextID byte, maxPDULength uint32, data []byte, isCommand bool, isLast bool) error {
	if maxPDULength == 0 {
		maxPDULength = DefaultMaxPDULength
	}
	// Calculate max data per PDV (PDU length - PDU header - PDV header)
	maxPDVData := int(maxPDULength) - 6 - 6
	if maxPDVData <= 0 {
		return fmt.Errorf("maximum PDU length %d too small", maxPDULength)
	}

	offset := 0
	for first := true; first || offset < len(data); first = false {
		chunkSize := len(data) - offset
		lastFragment := true
		if chunkSize > maxPDVData {
			chunkSize = maxPDVData
			lastFragment = false
		}

		pdvLength := uint32(chunkSize + 2)
		pdv := make([]byte, 0, pdvLength+4)
		pdv = binary.BigEndian.AppendUint32(pdv, pdvLength)
		pdv = append(pdv, presContextID)

		// Message Control Header
		// Bit 0: 0=data, 1=command
		// Bit 1: 0=not last, 1=last fragment
		controlHeader := byte(0)
		if isCommand {
			controlHeader |= 0x01
		}
		if lastFragment && isLast {
			controlHeader |= 0x02
		}
		pdv = append(pdv, controlHeader)
		pdv = append(pdv, data[offset:offset+chunkSize]...)

		if err := pdu.WritePDU(conn, pdu.TypePDataTF, pdv); err != nil {
			return dicomerrors.NewNetworkError("write P-DATA-TF", err)
		}

		offset += chunkSize
	}

	return nil
}

// ErrReleaseRequested is returned when the peer sends A-RELEASE-RQ while a
// DIMSE message is expected.
var ErrReleaseRequested = fmt.Errorf("%w: peer requested release", dicomerrors.ErrConnectionClosed)

// Received is a reassembled DIMSE message with the presentation context it
// arrived on.
type Received struct {
	ContextID byte
	Command   *types.Message
	Data      []byte
}

// ReceiveDIMSEMessage reads a complete DIMSE message (command and optional dataset)
func ReceiveDIMSEMessage(conn Connection) (*types.Message, []byte, error) {
	rcv, err := ReceiveMessage(conn)
	if err != nil {
		return nil, nil, err
	}
	return rcv.Command, rcv.Data, nil
}

// ReceiveMessage reads PDUs until a command, and the data set it announces,
// are complete. An A-ABORT from the peer yields an AbortError and an
// A-RELEASE-RQ yields ErrReleaseRequested.
func ReceiveMessage(conn Connection) (*Received, error) {
	var commandData []byte
	var datasetData []byte
	commandComplete := false
	datasetComplete := false
	datasetExpected := false
	rcv := &Received{}

	for {
		p, err := pdu.ReadPDU(conn, 0)
		if err != nil {
			return nil, dicomerrors.NewNetworkError("read PDU", err)
		}

		switch p.Type {
		case pdu.TypePDataTF:
			payload := p.Data
			offset := 0
			for offset < len(payload) {
				if offset+6 > len(payload) {
					return nil, dicomerrors.NewPDUError(p.Type, "malformed PDV encountered")
				}

				pdvLength := binary.BigEndian.Uint32(payload[offset : offset+4])
				end := offset + 4 + int(pdvLength)
				if pdvLength < 2 || end > len(payload) {
					return nil, dicomerrors.NewPDUError(p.Type, "PDV length exceeds PDU payload")
				}

				rcv.ContextID = payload[offset+4]
				controlHeader := payload[offset+5]
				value := payload[offset+6 : end]
				isCommand := controlHeader&0x01 != 0
				isLastFragment := controlHeader&0x02 != 0

				if isCommand {
					commandData = append(commandData, value...)
					if isLastFragment {
						commandComplete = true
						decoded, err := DecodeCommand(commandData)
						if err != nil {
							return nil, fmt.Errorf("failed to decode command: %w", err)
						}
						rcv.Command = decoded
						datasetExpected = HasDataSet(decoded)
					}
				} else {
					datasetData = append(datasetData, value...)
					if isLastFragment {
						datasetComplete = true
					}
				}

				offset = end
			}
		case pdu.TypeAbort:
			abort, err := pdu.ParseAbort(p.Data)
			if err != nil {
				return nil, err
			}
			return nil, dicomerrors.NewAbortError(abort.Source, abort.Reason)
		case pdu.TypeReleaseRQ:
			return nil, ErrReleaseRequested
		default:
			return nil, dicomerrors.NewPDUError(p.Type, "unexpected PDU while awaiting DIMSE message")
		}

		if commandComplete && (!datasetExpected || datasetComplete) {
			rcv.Data = datasetData
			return rcv, nil
		}
	}
}
