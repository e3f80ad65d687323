package dimse

import (
	"encoding/binary"
	"errors"
	"testing"

	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/types"
)

func TestDecodeCommand_Success(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected types.Message
	}{
		{
			name: "C-STORE Response",
			data: func() []byte {
				var buf []byte
				// Command Field (0000,0100)
				buf = append(buf, 0x00, 0x00, 0x00, 0x01) // Tag
				buf = append(buf, 0x02, 0x00, 0x00, 0x00) // Length = 2
				buf = append(buf, 0x01, 0x80)             // CStoreRSP = 0x8001

				// Message ID Being Responded To (0000,0120)
				buf = append(buf, 0x00, 0x00, 0x20, 0x01)
				buf = append(buf, 0x02, 0x00, 0x00, 0x00)
				buf = append(buf, 0x07, 0x00)

				// Command Data Set Type (0000,0800)
				buf = append(buf, 0x00, 0x00, 0x00, 0x08)
				buf = append(buf, 0x02, 0x00, 0x00, 0x00)
				buf = append(buf, 0x01, 0x01) // No data set

				// Status (0000,0900)
				buf = append(buf, 0x00, 0x00, 0x00, 0x09)
				buf = append(buf, 0x02, 0x00, 0x00, 0x00)
				buf = append(buf, 0x07, 0xB0) // 0xB007

				// Affected SOP Instance UID (0000,1000)
				buf = append(buf, 0x00, 0x00, 0x00, 0x10)
				uid := []byte("1.2.3.4\x00")
				buf = binary.LittleEndian.AppendUint32(buf, uint32(len(uid)))
				buf = append(buf, uid...)

				return buf
			}(),
			expected: types.Message{
				CommandField:              types.CStoreRSP,
				MessageIDBeingRespondedTo: 7,
				CommandDataSetType:        types.NoDataSet,
				Status:                    types.StatusStoreWarningDataSetDoesNotMatch,
				AffectedSOPInstanceUID:    "1.2.3.4",
			},
		},
		{
			name: "Non-command group elements are skipped",
			data: func() []byte {
				var buf []byte
				// Patient Name (0010,0010)
				buf = append(buf, 0x10, 0x00, 0x10, 0x00)
				buf = append(buf, 0x08, 0x00, 0x00, 0x00)
				buf = append(buf, []byte("Doe^John")...)

				// Command Field (0000,0100)
				buf = append(buf, 0x00, 0x00, 0x00, 0x01)
				buf = append(buf, 0x02, 0x00, 0x00, 0x00)
				buf = append(buf, 0x30, 0x00) // CEchoRQ

				return buf
			}(),
			expected: types.Message{
				CommandField:       types.CEchoRQ,
				CommandDataSetType: types.NoDataSet,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := DecodeCommand(tt.data)
			if err != nil {
				t.Fatalf("DecodeCommand() error = %v", err)
			}

			if msg.CommandField != tt.expected.CommandField {
				t.Errorf("CommandField = 0x%04x, want 0x%04x", msg.CommandField, tt.expected.CommandField)
			}
			if msg.MessageIDBeingRespondedTo != tt.expected.MessageIDBeingRespondedTo {
				t.Errorf("MessageIDBeingRespondedTo = %d, want %d", msg.MessageIDBeingRespondedTo, tt.expected.MessageIDBeingRespondedTo)
			}
			if msg.CommandDataSetType != tt.expected.CommandDataSetType {
				t.Errorf("CommandDataSetType = 0x%04x, want 0x%04x", msg.CommandDataSetType, tt.expected.CommandDataSetType)
			}
			if msg.Status != tt.expected.Status {
				t.Errorf("Status = 0x%04x, want 0x%04x", msg.Status, tt.expected.Status)
			}
			if msg.AffectedSOPInstanceUID != tt.expected.AffectedSOPInstanceUID {
				t.Errorf("AffectedSOPInstanceUID = %q, want %q", msg.AffectedSOPInstanceUID, tt.expected.AffectedSOPInstanceUID)
			}
		})
	}
}

func TestDecodeCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"Empty data", []byte{}},
		{"Too short", []byte{0x00, 0x00, 0x00, 0x01, 0x02}},
		{
			name: "Truncated value",
			data: []byte{0x00, 0x00, 0x00, 0x01, 0x02, 0x00, 0x00, 0x00, 0x01},
		},
		{
			name: "Very large length",
			data: []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x20, 0x00, 0x01, 0x00},
		},
		{
			name: "Missing command field",
			data: AppendImplicitElement(nil, 0x0000, elemMessageID, []byte{0x01, 0x00}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCommand(tt.data)
			if !errors.Is(err, dicomerrors.ErrInvalidMessage) {
				t.Errorf("expected ErrInvalidMessage, got %v", err)
			}
		})
	}
}

func TestEncodeCommand_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  types.Message
	}{
		{
			name: "C-STORE Request",
			msg: types.Message{
				CommandField:           types.CStoreRQ,
				MessageID:              3,
				Priority:               types.PriorityMedium,
				CommandDataSetType:     types.DataSetPresent,
				AffectedSOPClassUID:    types.CTImageStorage,
				AffectedSOPInstanceUID: "1.2.3.4.5",
			},
		},
		{
			name: "C-STORE Request as move sub-operation",
			msg: types.Message{
				CommandField:            types.CStoreRQ,
				MessageID:               4,
				Priority:                types.PriorityHigh,
				CommandDataSetType:      types.DataSetPresent,
				AffectedSOPClassUID:     types.MRImageStorage,
				AffectedSOPInstanceUID:  "1.2.3.4.6",
				MoveOriginatorAETitle:   "MOVESCU",
				MoveOriginatorMessageID: 99,
			},
		},
		{
			name: "C-STORE Response with comment",
			msg: types.Message{
				CommandField:              types.CStoreRSP,
				MessageIDBeingRespondedTo: 5,
				CommandDataSetType:        types.NoDataSet,
				Status:                    types.StatusStoreRefusedOutOfResources,
				ErrorComment:              "disk full",
				AffectedSOPClassUID:       types.CTImageStorage,
				AffectedSOPInstanceUID:    "1.2.3",
			},
		},
		{
			name: "C-ECHO Response",
			msg: types.Message{
				CommandField:              types.CEchoRSP,
				MessageIDBeingRespondedTo: 3,
				CommandDataSetType:        types.NoDataSet,
				Status:                    types.StatusSuccess,
				AffectedSOPClassUID:       types.VerificationSOPClass,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeCommand(&tt.msg)
			if err != nil {
				t.Fatalf("EncodeCommand() error = %v", err)
			}
			if len(data)%2 != 0 {
				t.Errorf("encoded length %d is odd", len(data))
			}
			groupLength := binary.LittleEndian.Uint32(data[8:12])
			if int(groupLength) != len(data)-12 {
				t.Errorf("group length = %d, want %d", groupLength, len(data)-12)
			}

			parsed, err := DecodeCommand(data)
			if err != nil {
				t.Fatalf("DecodeCommand() error = %v", err)
			}
			if *parsed != tt.msg {
				t.Errorf("round trip = %+v, want %+v", *parsed, tt.msg)
			}
		})
	}
}

func TestEncodeCommand_Nil(t *testing.T) {
	if _, err := EncodeCommand(nil); !errors.Is(err, dicomerrors.ErrInvalidMessage) {
		t.Errorf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestEncodeCommand_StoreAlwaysCarriesPriority(t *testing.T) {
	data, err := EncodeCommand(&types.Message{
		CommandField:       types.CStoreRQ,
		MessageID:          1,
		CommandDataSetType: types.DataSetPresent,
	})
	if err != nil {
		t.Fatalf("EncodeCommand() error = %v", err)
	}

	found := false
	for offset := 0; offset+8 <= len(data); {
		element := binary.LittleEndian.Uint16(data[offset+2 : offset+4])
		length := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		if element == elemPriority {
			found = true
		}
		offset += 8 + int(length)
	}
	if !found {
		t.Error("C-STORE-RQ is missing (0000,0700)")
	}
}
