package dicom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caio-sobreiro/dicomsend/types"
)

func imageRecord(fileID, sopClass, sopInstance string) []byte {
	return concat(
		explicitElement(DirectoryRecordTypeTag, VR_CS, []byte("IMAGE ")),
		explicitElement(ReferencedFileIDTag, VR_CS, []byte(fileID)),
		explicitElement(ReferencedSOPClassUIDInFileTag, VR_UI, uid(sopClass)),
		explicitElement(ReferencedSOPInstanceInFileTag, VR_UI, uid(sopInstance)),
		explicitElement(ReferencedTransferSyntaxTag, VR_UI, uid(types.ExplicitVRLittleEndian)),
	)
}

func buildDirectory() []byte {
	meta := FileMeta{
		MediaStorageSOPClassUID:    types.MediaStorageDirectoryStorage,
		MediaStorageSOPInstanceUID: "1.2.3.100",
		TransferSyntaxUID:          types.ExplicitVRLittleEndian,
	}
	dataset := concat(
		explicitElement(Tag{0x0004, 0x1130}, VR_CS, []byte("DISK01")),
		explicitSequence(DirectoryRecordSequenceTag,
			explicitElement(DirectoryRecordTypeTag, VR_CS, []byte("PATIENT ")),
			imageRecord(`IMAGES\IM0001`, types.CTImageStorage, "1.2.3.1"),
			imageRecord(`IMAGES\SUB\IM0002`, types.MRImageStorage, "1.2.3.2"),
		),
	)
	return BuildPart10(meta, dataset)
}

func TestReadDirectory(t *testing.T) {
	records, err := ReadDirectory(buildDirectory())
	if err != nil {
		t.Fatalf("ReadDirectory() error = %v", err)
	}

	// The patient record references no file and is skipped
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	want := DirectoryRecord{
		RecordType:        "IMAGE",
		FileID:            `IMAGES\IM0001`,
		SOPClassUID:       types.CTImageStorage,
		SOPInstanceUID:    "1.2.3.1",
		TransferSyntaxUID: types.ExplicitVRLittleEndian,
	}
	if records[0] != want {
		t.Errorf("records[0] = %+v, want %+v", records[0], want)
	}
	if records[1].SOPClassUID != types.MRImageStorage || records[1].FileID != `IMAGES\SUB\IM0002` {
		t.Errorf("records[1] = %+v", records[1])
	}
}

func TestReadDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "DICOMDIR")
	if err := os.WriteFile(path, buildDirectory(), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadDirectoryFile(path)
	if err != nil {
		t.Fatalf("ReadDirectoryFile() error = %v", err)
	}
	got := records[1].Path(dir)
	want := filepath.Join(dir, "IMAGES", "SUB", "IM0002")
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestReadDirectory_NotDICOM(t *testing.T) {
	if _, err := ReadDirectory([]byte("not a directory at all")); err == nil {
		t.Error("Expected an error for garbage input")
	}
}

func TestJoinFileID(t *testing.T) {
	tests := []struct {
		dir    string
		fileID string
		want   string
	}{
		{"/media", `IMAGES\IM0001`, filepath.Join("/media", "IMAGES", "IM0001")},
		{"cd", `A\B\C`, filepath.Join("cd", "A", "B", "C")},
		{"cd", `FILE `, filepath.Join("cd", "FILE")},
		{"cd", `A\\B`, filepath.Join("cd", "A", "B")},
	}

	for _, tt := range tests {
		t.Run(tt.fileID, func(t *testing.T) {
			if got := JoinFileID(tt.dir, tt.fileID); got != tt.want {
				t.Errorf("JoinFileID() = %q, want %q", got, tt.want)
			}
		})
	}
}
