package dicom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Directory record attributes
var (
	DirectoryRecordSequenceTag     = Tag{0x0004, 0x1220}
	DirectoryRecordTypeTag         = Tag{0x0004, 0x1430}
	ReferencedFileIDTag            = Tag{0x0004, 0x1500}
	ReferencedSOPClassUIDInFileTag = Tag{0x0004, 0x1510}
	ReferencedSOPInstanceInFileTag = Tag{0x0004, 0x1511}
	ReferencedTransferSyntaxTag    = Tag{0x0004, 0x1512}
)

// DirectoryRecord is one entry of a DICOMDIR that references a file
type DirectoryRecord struct {
	RecordType        string
	FileID            string
	SOPClassUID       string
	SOPInstanceUID    string
	TransferSyntaxUID string
}

// Path returns the referenced file's location relative to dir
func (r DirectoryRecord) Path(dir string) string {
	return JoinFileID(dir, r.FileID)
}

// ReadDirectory lists the records of a DICOMDIR that reference a file, in
// the order they appear in the directory record sequence.
func ReadDirectory(data []byte) ([]DirectoryRecord, error) {
	obj, err := ReadObject(data, ReadAuto)
	if err != nil {
		return nil, err
	}
	enc, ok := EncodingOf(obj.TransferSyntaxUID)
	if !ok {
		return nil, fmt.Errorf("dicom: directory encoded as %s cannot be read", obj.TransferSyntaxUID)
	}

	r := newElementReader(obj.Data, enc)
	elems, err := r.readDataSet(len(obj.Data), false, func(t Tag) bool {
		return DirectoryRecordSequenceTag.less(t)
	})
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	for _, elem := range elems {
		if elem.Tag != DirectoryRecordSequenceTag {
			continue
		}
		var records []DirectoryRecord
		for _, item := range elem.Items {
			record := directoryRecord(item)
			if record.FileID == "" {
				continue
			}
			records = append(records, record)
		}
		return records, nil
	}
	return nil, fmt.Errorf("dicom: no directory record sequence %s", DirectoryRecordSequenceTag)
}

// ReadDirectoryFile reads the DICOMDIR at path
func ReadDirectoryFile(path string) ([]DirectoryRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := ReadDirectory(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func directoryRecord(item []*rawElement) DirectoryRecord {
	var record DirectoryRecord
	for _, elem := range item {
		value := trimValue(elem.Value)
		switch elem.Tag {
		case DirectoryRecordTypeTag:
			record.RecordType = value
		case ReferencedFileIDTag:
			record.FileID = value
		case ReferencedSOPClassUIDInFileTag:
			record.SOPClassUID = value
		case ReferencedSOPInstanceInFileTag:
			record.SOPInstanceUID = value
		case ReferencedTransferSyntaxTag:
			record.TransferSyntaxUID = value
		}
	}
	return record
}

// JoinFileID resolves a referenced file ID against the directory holding
// the DICOMDIR. File IDs separate components with backslashes regardless of
// the host platform.
func JoinFileID(dir, fileID string) string {
	parts := []string{dir}
	for _, component := range strings.Split(fileID, `\`) {
		if component = strings.TrimSpace(component); component != "" {
			parts = append(parts, component)
		}
	}
	return filepath.Join(parts...)
}
