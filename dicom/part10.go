package dicom

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	preambleLength = 128
	part10Offset   = preambleLength + 4
)

// ErrNotPart10 is returned when a file is required but the data has no
// preamble and DICM prefix.
var ErrNotPart10 = errors.New("dicom: not a Part 10 file (missing DICM prefix at offset 128)")

// File meta information tags
var (
	FileMetaGroupLengthTag     = Tag{0x0002, 0x0000}
	FileMetaVersionTag         = Tag{0x0002, 0x0001}
	MediaStorageSOPClassUIDTag = Tag{0x0002, 0x0002}
	MediaStorageSOPInstanceTag = Tag{0x0002, 0x0003}
	TransferSyntaxUIDTag       = Tag{0x0002, 0x0010}
	ImplementationClassUIDTag  = Tag{0x0002, 0x0012}
	ImplementationVersionTag   = Tag{0x0002, 0x0013}
	SourceApplicationEntityTag = Tag{0x0002, 0x0016}
)

// FileMeta holds the group 0002 attributes of a Part 10 file
type FileMeta struct {
	MediaStorageSOPClassUID    string
	MediaStorageSOPInstanceUID string
	TransferSyntaxUID          string
	ImplementationClassUID     string
	ImplementationVersionName  string
	SourceAETitle              string
}

// Object is a data set loaded from a file or a byte slice, with the
// transfer syntax its bytes are encoded in.
type Object struct {
	Meta              FileMeta
	TransferSyntaxUID string
	Data              []byte
}

// Size returns the encoded size of the data set in bytes
func (o *Object) Size() int64 {
	return int64(len(o.Data))
}

// ParseFileMeta reads the file meta information that follows the preamble
// and returns it with the offset at which the data set starts.
func ParseFileMeta(data []byte) (FileMeta, int, error) {
	var meta FileMeta
	if len(data) < part10Offset {
		return meta, 0, fmt.Errorf("data too short to be DICOM Part 10 (need at least %d bytes, got %d)", part10Offset, len(data))
	}
	if !HasPart10Header(data) {
		return meta, 0, ErrNotPart10
	}

	r := newElementReader(data, ExplicitVRLittle)
	r.pos = part10Offset
	elems, err := r.readDataSet(len(data), false, func(t Tag) bool { return t.Group != 0x0002 })
	if err != nil {
		return meta, 0, fmt.Errorf("read file meta information: %w", err)
	}

	for _, elem := range elems {
		value := trimValue(elem.Value)
		switch elem.Tag {
		case MediaStorageSOPClassUIDTag:
			meta.MediaStorageSOPClassUID = value
		case MediaStorageSOPInstanceTag:
			meta.MediaStorageSOPInstanceUID = value
		case TransferSyntaxUIDTag:
			meta.TransferSyntaxUID = value
		case ImplementationClassUIDTag:
			meta.ImplementationClassUID = value
		case ImplementationVersionTag:
			meta.ImplementationVersionName = value
		case SourceApplicationEntityTag:
			meta.SourceAETitle = value
		}
	}
	return meta, r.pos, nil
}

// StripPart10Header removes the DICOM Part 10 preamble and File Meta Information
// to extract just the dataset.
//
// DIMSE operations such as C-STORE carry only the data set, without the
// Part 10 wrapper.
func StripPart10Header(data []byte) ([]byte, error) {
	meta, offset, err := ParseFileMeta(data)
	if err != nil {
		return nil, err
	}

	if meta.TransferSyntaxUID != "" {
		slog.Debug("Found Transfer Syntax UID in File Meta Information",
			"transfer_syntax", meta.TransferSyntaxUID,
			"dataset_start_offset", offset)
	}

	if offset >= len(data) {
		return nil, fmt.Errorf("failed to find dataset after File Meta Information")
	}

	return data[offset:], nil
}

// HasPart10Header checks if the data starts with a DICOM Part 10 header.
//
// Returns true if the data contains the 128-byte preamble followed by "DICM".
func HasPart10Header(data []byte) bool {
	if len(data) < part10Offset {
		return false
	}
	return string(data[preambleLength:part10Offset]) == "DICM"
}

// ReadObject splits data into file meta information and data set according
// to mode. Raw data sets get their encoding sniffed.
func ReadObject(data []byte, mode ReadMode) (*Object, error) {
	hasHeader := HasPart10Header(data)
	if err := mode.check(hasHeader); err != nil {
		return nil, err
	}

	if !hasHeader {
		return &Object{TransferSyntaxUID: sniffEncoding(data).TransferSyntaxUID(), Data: data}, nil
	}

	meta, offset, err := ParseFileMeta(data)
	if err != nil {
		return nil, err
	}
	if meta.TransferSyntaxUID == "" {
		return nil, fmt.Errorf("dicom: file meta information has no transfer syntax UID")
	}
	return &Object{Meta: meta, TransferSyntaxUID: meta.TransferSyntaxUID, Data: data[offset:]}, nil
}

// ReadObjectFile loads a file-backed object
func ReadObjectFile(path string, mode ReadMode) (*Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	obj, err := ReadObject(data, mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

// BuildPart10 wraps a data set in a preamble and file meta information.
// The data set must already be encoded in meta.TransferSyntaxUID.
func BuildPart10(meta FileMeta, dataset []byte) []byte {
	group := newElementWriter(ExplicitVRLittle)
	group.writeElement(&rawElement{Tag: FileMetaVersionTag, VR: VR_OB, Value: []byte{0x00, 0x01}})
	for _, field := range []struct {
		tag   Tag
		vr    string
		value string
	}{
		{MediaStorageSOPClassUIDTag, VR_UI, meta.MediaStorageSOPClassUID},
		{MediaStorageSOPInstanceTag, VR_UI, meta.MediaStorageSOPInstanceUID},
		{TransferSyntaxUIDTag, VR_UI, meta.TransferSyntaxUID},
		{ImplementationClassUIDTag, VR_UI, meta.ImplementationClassUID},
		{ImplementationVersionTag, VR_SH, meta.ImplementationVersionName},
		{SourceApplicationEntityTag, VR_AE, meta.SourceAETitle},
	} {
		if field.value == "" {
			continue
		}
		group.writeElement(&rawElement{Tag: field.tag, VR: field.vr, Value: []byte(field.value)})
	}

	out := newElementWriter(ExplicitVRLittle)
	out.buf = make([]byte, preambleLength, part10Offset+12+len(group.buf)+len(dataset))
	out.buf = append(out.buf, "DICM"...)
	out.writeElement(&rawElement{
		Tag:   FileMetaGroupLengthTag,
		VR:    VR_UL,
		Value: ExplicitVRLittle.byteOrder().AppendUint32(nil, uint32(len(group.buf))),
	})
	out.buf = append(out.buf, group.buf...)
	return append(out.buf, dataset...)
}

func trimValue(value []byte) string {
	return strings.TrimSpace(strings.TrimRight(string(value), "\x00 "))
}
