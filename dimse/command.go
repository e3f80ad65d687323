package dimse

import (
	"encoding/binary"
	"fmt"
	"strings"

	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/types"
)

// Command group elements
const (
	elemGroupLength             = 0x0000
	elemAffectedSOPClassUID     = 0x0002
	elemCommandField            = 0x0100
	elemMessageID               = 0x0110
	elemMessageIDBeingResponded = 0x0120
	elemPriority                = 0x0700
	elemCommandDataSetType      = 0x0800
	elemStatus                  = 0x0900
	elemErrorComment            = 0x0902
	elemAffectedSOPInstanceUID  = 0x1000
	elemMoveOriginatorAETitle   = 0x1030
	elemMoveOriginatorMessageID = 0x1031
)

// EncodeCommand encodes a DIMSE command message using Implicit VR Little Endian
func EncodeCommand(msg *types.Message) ([]byte, error) {
	if msg == nil {
		return nil, dicomerrors.ErrInvalidMessage
	}
	buf := make([]byte, 0, 256)

	// Command Group Length (0000,0000) - will calculate later
	buf = AppendImplicitElement(buf, 0x0000, elemGroupLength, make([]byte, 4))
	lengthPos := len(buf) - 4

	if msg.AffectedSOPClassUID != "" {
		buf = AppendImplicitElement(buf, 0x0000, elemAffectedSOPClassUID, padUID(msg.AffectedSOPClassUID))
	}

	buf = AppendImplicitElement(buf, 0x0000, elemCommandField, uint16Value(msg.CommandField))

	// Message ID is absent from responses
	if msg.MessageID != 0 {
		buf = AppendImplicitElement(buf, 0x0000, elemMessageID, uint16Value(msg.MessageID))
	}
	if msg.MessageIDBeingRespondedTo != 0 {
		buf = AppendImplicitElement(buf, 0x0000, elemMessageIDBeingResponded, uint16Value(msg.MessageIDBeingRespondedTo))
	}

	// Priority is required on C-STORE-RQ, where MEDIUM is zero
	if msg.CommandField == types.CStoreRQ || msg.Priority != 0 {
		buf = AppendImplicitElement(buf, 0x0000, elemPriority, uint16Value(msg.Priority))
	}

	buf = AppendImplicitElement(buf, 0x0000, elemCommandDataSetType, uint16Value(msg.CommandDataSetType))

	// Status is only meaningful in responses
	if msg.CommandField&0x8000 != 0 {
		buf = AppendImplicitElement(buf, 0x0000, elemStatus, uint16Value(msg.Status))
	}
	if msg.ErrorComment != "" {
		buf = AppendImplicitElement(buf, 0x0000, elemErrorComment, padText(msg.ErrorComment))
	}

	if msg.AffectedSOPInstanceUID != "" {
		buf = AppendImplicitElement(buf, 0x0000, elemAffectedSOPInstanceUID, padUID(msg.AffectedSOPInstanceUID))
	}

	if msg.MoveOriginatorAETitle != "" {
		buf = AppendImplicitElement(buf, 0x0000, elemMoveOriginatorAETitle, padText(msg.MoveOriginatorAETitle))
		buf = AppendImplicitElement(buf, 0x0000, elemMoveOriginatorMessageID, uint16Value(msg.MoveOriginatorMessageID))
	}

	// Update Command Group Length
	groupLength := uint32(len(buf) - lengthPos - 4)
	binary.LittleEndian.PutUint32(buf[lengthPos:lengthPos+4], groupLength)

	return buf, nil
}

// AppendImplicitElement appends a DICOM element using Implicit VR (no VR field)
func AppendImplicitElement(buf []byte, group, element uint16, value []byte) []byte {
	// Group (2 bytes, little endian)
	buf = append(buf, byte(group), byte(group>>8))
	// Element (2 bytes, little endian)
	buf = append(buf, byte(element), byte(element>>8))
	// Length (4 bytes, little endian)
	length := uint32(len(value))
	buf = append(buf, byte(length), byte(length>>8), byte(length>>16), byte(length>>24))
	// Value
	buf = append(buf, value...)
	return buf
}

// DecodeCommand decodes a DIMSE command message
func DecodeCommand(data []byte) (*types.Message, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: command set too short (%d bytes)", dicomerrors.ErrInvalidMessage, len(data))
	}

	msg := &types.Message{
		CommandDataSetType: types.NoDataSet,
	}
	offset := 0
	sawCommandField := false

	for offset+8 <= len(data) {
		group := binary.LittleEndian.Uint16(data[offset : offset+2])
		element := binary.LittleEndian.Uint16(data[offset+2 : offset+4])
		length := binary.LittleEndian.Uint32(data[offset+4 : offset+8])

		if offset+8+int(length) > len(data) {
			return nil, fmt.Errorf("%w: element (%04x,%04x) length %d exceeds command set",
				dicomerrors.ErrInvalidMessage, group, element, length)
		}

		value := data[offset+8 : offset+8+int(length)]
		offset += 8 + int(length)

		if group != 0x0000 {
			continue
		}

		switch element {
		case elemAffectedSOPClassUID:
			msg.AffectedSOPClassUID = trimText(value)
		case elemCommandField:
			if len(value) >= 2 {
				msg.CommandField = binary.LittleEndian.Uint16(value[:2])
				sawCommandField = true
			}
		case elemMessageID:
			if len(value) >= 2 {
				msg.MessageID = binary.LittleEndian.Uint16(value[:2])
			}
		case elemMessageIDBeingResponded:
			if len(value) >= 2 {
				msg.MessageIDBeingRespondedTo = binary.LittleEndian.Uint16(value[:2])
			}
		case elemPriority:
			if len(value) >= 2 {
				msg.Priority = binary.LittleEndian.Uint16(value[:2])
			}
		case elemCommandDataSetType:
			if len(value) >= 2 {
				msg.CommandDataSetType = binary.LittleEndian.Uint16(value[:2])
			}
		case elemStatus:
			if len(value) >= 2 {
				msg.Status = binary.LittleEndian.Uint16(value[:2])
			}
		case elemErrorComment:
			msg.ErrorComment = trimText(value)
		case elemAffectedSOPInstanceUID:
			msg.AffectedSOPInstanceUID = trimText(value)
		case elemMoveOriginatorAETitle:
			msg.MoveOriginatorAETitle = trimText(value)
		case elemMoveOriginatorMessageID:
			if len(value) >= 2 {
				msg.MoveOriginatorMessageID = binary.LittleEndian.Uint16(value[:2])
			}
		}
	}

	if !sawCommandField {
		return nil, fmt.Errorf("%w: missing command field", dicomerrors.ErrInvalidMessage)
	}
	return msg, nil
}

// HasDataSet reports whether a dataset follows the command
func HasDataSet(msg *types.Message) bool {
	return msg.CommandDataSetType != types.NoDataSet
}

func uint16Value(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, v)
}

// padUID pads a UID to even length with a NUL byte
func padUID(uid string) []byte {
	b := []byte(uid)
	if len(b)%2 == 1 {
		b = append(b, 0x00)
	}
	return b
}

// padText pads a text value to even length with a space
func padText(s string) []byte {
	b := []byte(s)
	if len(b)%2 == 1 {
		b = append(b, 0x20)
	}
	return b
}

func trimText(value []byte) string {
	return strings.TrimRight(string(value), "\x00 ")
}
