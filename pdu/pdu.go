package pdu

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
)

// PDU types
const (
	TypeAssociateRQ = 0x01
	TypeAssociateAC = 0x02
	TypeAssociateRJ = 0x03
	TypePDataTF     = 0x04
	TypeReleaseRQ   = 0x05
	TypeReleaseRP   = 0x06
	TypeAbort       = 0x07
)

// Item types of the A-ASSOCIATE variable field
const (
	ItemApplicationContext     = 0x10
	ItemPresentationContextRQ  = 0x20
	ItemPresentationContextAC  = 0x21
	ItemAbstractSyntax         = 0x30
	ItemTransferSyntax         = 0x40
	ItemUserInformation        = 0x50
	ItemMaximumLength          = 0x51
	ItemImplementationClassUID = 0x52
	ItemImplementationVersion  = 0x55
)

// headerLength is the size of the type, reserved and length fields that
// precede every PDU body.
const headerLength = 6

// PDU represents a Protocol Data Unit
type PDU struct {
	Type   byte
	Length uint32
	Data   []byte
}

// ReadPDU reads a complete PDU from r. A non-zero maxLength rejects PDUs
// whose announced body is larger, before any of it is allocated.
func ReadPDU(r io.Reader, maxLength uint32) (*PDU, error) {
	header := make([]byte, headerLength)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	pduType := header[0]
	pduLength := binary.BigEndian.Uint32(header[2:6])
	if pduType < TypeAssociateRQ || pduType > TypeAbort {
		return nil, dicomerrors.NewPDUError(pduType, "unknown PDU type")
	}
	if maxLength > 0 && pduLength > maxLength {
		return nil, dicomerrors.NewPDUError(pduType,
			fmt.Sprintf("PDU length %d exceeds limit %d", pduLength, maxLength))
	}

	data := make([]byte, pduLength)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("failed to read PDU data: %w", err)
	}

	return &PDU{
		Type:   pduType,
		Length: pduLength,
		Data:   data,
	}, nil
}

// WritePDU frames data as a PDU of the given type and writes it in one call
func WritePDU(w io.Writer, pduType byte, data []byte) error {
	buf := make([]byte, headerLength, headerLength+len(data))
	buf[0] = pduType
	binary.BigEndian.PutUint32(buf[2:6], uint32(len(data)))
	buf = append(buf, data...)
	_, err := w.Write(buf)
	return err
}

// Encode returns the PDU with its header
func (p *PDU) Encode() []byte {
	buf := make([]byte, headerLength, headerLength+len(p.Data))
	buf[0] = p.Type
	binary.BigEndian.PutUint32(buf[2:6], uint32(len(p.Data)))
	return append(buf, p.Data...)
}

// ReleaseData is the body of both A-RELEASE-RQ and A-RELEASE-RP
func ReleaseData() []byte {
	return make([]byte, 4)
}

// Abort sources
const (
	AbortSourceServiceUser     byte = 0x00
	AbortSourceServiceProvider byte = 0x02
)

// Abort is the body of an A-ABORT PDU
type Abort struct {
	Source byte
	Reason byte
}

// Encode returns the A-ABORT body
func (a Abort) Encode() []byte {
	return []byte{0x00, 0x00, a.Source, a.Reason}
}

// ParseAbort decodes an A-ABORT body
func ParseAbort(data []byte) (Abort, error) {
	if len(data) < 4 {
		return Abort{}, dicomerrors.NewPDUError(TypeAbort, "A-ABORT too short")
	}
	return Abort{Source: data[2], Reason: data[3]}, nil
}

// item is one type-length-value entry of an A-ASSOCIATE variable field
type item struct {
	Type  byte
	Value []byte
}

func appendItem(buf []byte, itemType byte, value []byte) []byte {
	buf = append(buf, itemType, 0x00)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(value)))
	return append(buf, value...)
}

// splitItems walks a sequence of items, returning an error when one of
// them runs past the end of data.
func splitItems(data []byte) ([]item, error) {
	var items []item
	offset := 0
	for offset+4 <= len(data) {
		itemType := data[offset]
		itemLength := binary.BigEndian.Uint16(data[offset+2 : offset+4])
		valueStart := offset + 4
		valueEnd := valueStart + int(itemLength)
		if valueEnd > len(data) {
			return nil, fmt.Errorf("item 0x%02x exceeds length", itemType)
		}
		items = append(items, item{Type: itemType, Value: data[valueStart:valueEnd]})
		offset = valueEnd
	}
	return items, nil
}

func normalizeUID(raw []byte) string {
	value := string(raw)
	value = strings.TrimRight(value, "\x00 ")
	return value
}

func normalizeAETitle(raw []byte) string {
	value := string(raw)
	if idx := strings.IndexByte(value, 0); idx != -1 {
		value = value[:idx]
	}
	return strings.TrimSpace(value)
}

// padAETitle returns the 16 byte space padded form of an AE title
func padAETitle(title string) []byte {
	if len(title) > 16 {
		title = title[:16]
	}
	return []byte(fmt.Sprintf("%-16s", title))
}
