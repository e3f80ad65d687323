package dicom

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadMode selects how an object source is interpreted
type ReadMode int

const (
	// ReadAuto accepts a Part 10 file or a raw data set
	ReadAuto ReadMode = iota
	// ReadFileOnly requires the Part 10 preamble and file meta information
	ReadFileOnly
	// ReadDatasetOnly requires a raw data set without file meta information
	ReadDatasetOnly
)

func (m ReadMode) String() string {
	switch m {
	case ReadAuto:
		return "auto"
	case ReadFileOnly:
		return "file-only"
	case ReadDatasetOnly:
		return "dataset-only"
	default:
		return fmt.Sprintf("ReadMode(%d)", int(m))
	}
}

// ParseReadMode maps a configuration string to a ReadMode
func ParseReadMode(s string) (ReadMode, error) {
	switch s {
	case "", "auto":
		return ReadAuto, nil
	case "file-only", "file":
		return ReadFileOnly, nil
	case "dataset-only", "dataset":
		return ReadDatasetOnly, nil
	}
	return ReadAuto, fmt.Errorf("unknown read mode %q", s)
}

func (m ReadMode) check(hasHeader bool) error {
	switch {
	case m == ReadFileOnly && !hasHeader:
		return ErrNotPart10
	case m == ReadDatasetOnly && hasHeader:
		return errors.New("dicom: expected a raw data set but found a Part 10 header")
	}
	return nil
}

// ObjectIdentity is the triple that decides how an object is negotiated
type ObjectIdentity struct {
	SOPClassUID       string
	SOPInstanceUID    string
	TransferSyntaxUID string
}

// peekPrefixSize bounds the first read of PeekFile. Almost every object
// carries its SOP instance UID well before this offset.
const peekPrefixSize = 64 * 1024

// Peek extracts the SOP class, SOP instance and transfer syntax UIDs without
// decoding the rest of the object.
func Peek(data []byte, mode ReadMode) (ObjectIdentity, error) {
	hasHeader := HasPart10Header(data)
	if err := mode.check(hasHeader); err != nil {
		return ObjectIdentity{}, err
	}

	var (
		id   ObjectIdentity
		body = data
		enc  Encoding
	)
	if hasHeader {
		meta, offset, err := ParseFileMeta(data)
		if err != nil {
			return id, err
		}
		id = ObjectIdentity{
			SOPClassUID:       meta.MediaStorageSOPClassUID,
			SOPInstanceUID:    meta.MediaStorageSOPInstanceUID,
			TransferSyntaxUID: meta.TransferSyntaxUID,
		}
		var ok bool
		if enc, ok = EncodingOf(meta.TransferSyntaxUID); !ok || meta.TransferSyntaxUID == "" {
			// Deflated or undeclared data sets cannot be walked; the file
			// meta information is all there is.
			return id, nil
		}
		body = data[offset:]
	} else {
		enc = sniffEncoding(data)
		id.TransferSyntaxUID = enc.TransferSyntaxUID()
	}

	r := newElementReader(body, enc)
	elems, err := r.readDataSet(len(body), false, func(t Tag) bool {
		return SOPInstanceUIDTag.less(t)
	})

	var sawClass, sawInstance bool
	for _, elem := range elems {
		switch elem.Tag {
		case SOPClassUIDTag:
			id.SOPClassUID, sawClass = trimValue(elem.Value), true
		case SOPInstanceUIDTag:
			id.SOPInstanceUID, sawInstance = trimValue(elem.Value), true
		}
	}
	if err != nil && !(sawClass && sawInstance) {
		return id, fmt.Errorf("peek %s data set: %w", enc, err)
	}
	return id, nil
}

// PeekFile runs Peek over the start of a file, reading the whole file only
// when the identifying elements lie beyond the first chunk.
func PeekFile(path string, mode ReadMode) (ObjectIdentity, error) {
	f, err := os.Open(path)
	if err != nil {
		return ObjectIdentity{}, err
	}
	defer f.Close()

	prefix := make([]byte, peekPrefixSize)
	n, err := io.ReadFull(f, prefix)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return ObjectIdentity{}, fmt.Errorf("read %s: %w", path, err)
	}

	id, err := Peek(prefix[:n], mode)
	if errors.Is(err, errTruncated) && n == peekPrefixSize {
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return ObjectIdentity{}, rerr
		}
		id, err = Peek(data, mode)
	}
	if err != nil {
		return id, fmt.Errorf("%s: %w", path, err)
	}
	return id, nil
}

// sniffEncoding guesses the encoding of a raw data set from its first
// element: two upper-case letters naming a VR after the tag mean explicit VR.
func sniffEncoding(data []byte) Encoding {
	if len(data) >= 6 && isKnownVR(string(data[4:6])) {
		return ExplicitVRLittle
	}
	return ImplicitVRLittle
}
