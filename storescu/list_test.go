package storescu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caio-sobreiro/dicomsend/dicom"
	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/types"
)

func TestAddFile(t *testing.T) {
	dir := t.TempDir()
	part10 := writePart10(t, dir, "ct.dcm", types.CTImageStorage, "1.2.3.1", types.ExplicitVRLittleEndian)

	raw, err := testDataset(types.MRImageStorage, "1.2.3.2").Encode(types.ImplicitVRLittleEndian)
	require.NoError(t, err)
	rawPath := filepath.Join(dir, "mr.raw")
	require.NoError(t, os.WriteFile(rawPath, raw, 0o644))

	l := newTestList(ListOptions{})
	require.NoError(t, l.AddFile(part10, ReadAuto, true))
	require.NoError(t, l.AddFile(rawPath, ReadDatasetOnly, true))

	require.Equal(t, 2, l.Len())

	ct := l.Entry(0)
	assert.Equal(t, types.CTImageStorage, ct.SOPClassUID)
	assert.Equal(t, "1.2.3.1", ct.SOPInstanceUID)
	assert.Equal(t, types.ExplicitVRLittleEndian, ct.TransferSyntaxUID)
	assert.True(t, ct.Uncompressed)
	assert.Equal(t, "ct.dcm", ct.SourceName())
	assert.Equal(t, &FileSource{Path: part10, ReadMode: ReadAuto}, ct.Source)

	mr := l.Entry(1)
	assert.Equal(t, types.MRImageStorage, mr.SOPClassUID)
	assert.Equal(t, types.ImplicitVRLittleEndian, mr.TransferSyntaxUID)

	assert.Error(t, l.AddFile(rawPath, ReadFileOnly, true), "raw data set must be refused in file-only mode")
	assert.Error(t, l.AddFile(part10, ReadDatasetOnly, true), "Part 10 file must be refused in dataset-only mode")
	assert.Error(t, l.AddFile(filepath.Join(dir, "missing.dcm"), ReadAuto, true))
	assert.Equal(t, 2, l.Len())
}

func TestAddFiles_Policy(t *testing.T) {
	dir := t.TempDir()
	good1 := writePart10(t, dir, "a.dcm", types.CTImageStorage, "1.2.3.1", types.ExplicitVRLittleEndian)
	bad := writePart10(t, dir, "b.dcm", types.CTImageStorage, "1.2.x", types.ExplicitVRLittleEndian)
	good2 := writePart10(t, dir, "c.dcm", types.CTImageStorage, "1.2.3.3", types.ExplicitVRLittleEndian)
	paths := []string{good1, bad, good2}

	t.Run("skip invalid", func(t *testing.T) {
		l := newTestList(ListOptions{})
		added, skipped, err := l.AddFiles(paths, ReadAuto, true)
		require.NoError(t, err)
		assert.Equal(t, 2, added)
		assert.Equal(t, 1, skipped)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("halt on invalid", func(t *testing.T) {
		l := newTestList(ListOptions{HaltOnInvalidFile: true})
		added, _, err := l.AddFiles(paths, ReadAuto, true)
		require.Error(t, err)
		assert.True(t, dicomerrors.IsValidationCode(err, dicomerrors.InvalidSOPInstance))
		assert.Equal(t, 1, added)
		assert.Equal(t, 1, l.Len())
	})

	t.Run("lenient admission", func(t *testing.T) {
		l := newTestList(ListOptions{HaltOnInvalidFile: true})
		added, _, err := l.AddFiles(paths, ReadAuto, false)
		require.NoError(t, err)
		assert.Equal(t, 3, added)
	})
}

// writeDICOMDIR writes a directory referencing the given file IDs. Records
// with an empty class leave the referenced UIDs out.
func writeDICOMDIR(t *testing.T, dir string, records []dicom.DirectoryRecord) string {
	t.Helper()

	items := make([]*dicom.Dataset, 0, len(records))
	for _, r := range records {
		item := dicom.NewDataset()
		item.AddElement(dicom.DirectoryRecordTypeTag, dicom.VR_CS, r.RecordType)
		item.AddElement(dicom.ReferencedFileIDTag, dicom.VR_CS, r.FileID)
		if r.SOPClassUID != "" {
			item.AddElement(dicom.ReferencedSOPClassUIDInFileTag, dicom.VR_UI, r.SOPClassUID)
			item.AddElement(dicom.ReferencedSOPInstanceInFileTag, dicom.VR_UI, r.SOPInstanceUID)
			item.AddElement(dicom.ReferencedTransferSyntaxTag, dicom.VR_UI, r.TransferSyntaxUID)
		}
		items = append(items, item)
	}

	ds := dicom.NewDataset()
	ds.AddElement(dicom.SOPClassUIDTag, dicom.VR_UI, types.MediaStorageDirectoryStorage)
	ds.AddElement(dicom.SOPInstanceUIDTag, dicom.VR_UI, "1.2.3.100")
	ds.AddElement(dicom.DirectoryRecordSequenceTag, dicom.VR_SQ, items)
	body, err := ds.Encode(types.ExplicitVRLittleEndian)
	require.NoError(t, err)

	path := filepath.Join(dir, "DICOMDIR")
	require.NoError(t, os.WriteFile(path, dicom.BuildPart10(dicom.FileMeta{
		MediaStorageSOPClassUID:    types.MediaStorageDirectoryStorage,
		MediaStorageSOPInstanceUID: "1.2.3.100",
		TransferSyntaxUID:          types.ExplicitVRLittleEndian,
	}, body), 0o644))
	return path
}

func TestAddFile_DICOMDIR(t *testing.T) {
	dir := t.TempDir()
	writePart10(t, dir, filepath.Join("IMG", "A"), types.CTImageStorage, "1.2.3.1", types.ExplicitVRLittleEndian)
	writePart10(t, dir, filepath.Join("IMG", "B"), types.MRImageStorage, "1.2.3.2", types.ImplicitVRLittleEndian)
	dicomdir := writeDICOMDIR(t, dir, []dicom.DirectoryRecord{
		{RecordType: "IMAGE", FileID: `IMG\A`, SOPClassUID: types.CTImageStorage, SOPInstanceUID: "1.2.3.1", TransferSyntaxUID: types.ExplicitVRLittleEndian},
		{RecordType: "IMAGE", FileID: `IMG\B`},
		{RecordType: "IMAGE", FileID: `IMG\C`, SOPClassUID: types.CTImageStorage, SOPInstanceUID: "", TransferSyntaxUID: types.ExplicitVRLittleEndian},
	})

	t.Run("fan out", func(t *testing.T) {
		l := newTestList(ListOptions{ReadFromDICOMDIR: true})
		added, skipped, err := l.AddFiles([]string{dicomdir}, ReadAuto, true)
		require.NoError(t, err)
		assert.Equal(t, 2, added)
		assert.Equal(t, 1, skipped)

		require.Equal(t, 2, l.Len())
		assert.Equal(t, "1.2.3.1", l.Entry(0).SOPInstanceUID)
		assert.Equal(t, filepath.Join(dir, "IMG", "A"), l.Entry(0).Source.Name())
		// UIDs missing from the record are peeked from the file
		assert.Equal(t, "1.2.3.2", l.Entry(1).SOPInstanceUID)
		assert.Equal(t, types.ImplicitVRLittleEndian, l.Entry(1).TransferSyntaxUID)
	})

	t.Run("halt on broken reference", func(t *testing.T) {
		l := newTestList(ListOptions{ReadFromDICOMDIR: true, HaltOnInvalidFile: true})
		require.Error(t, l.AddFile(dicomdir, ReadAuto, true))
		assert.Equal(t, 2, l.Len(), "objects before the failure stay admitted")
	})

	t.Run("directory reading disabled", func(t *testing.T) {
		l := newTestList(ListOptions{})
		err := l.AddFile(dicomdir, ReadAuto, true)
		assert.True(t, dicomerrors.IsValidationCode(err, dicomerrors.InvalidSOPClass))
		assert.Zero(t, l.Len())
	})
}

func TestAddDataset(t *testing.T) {
	l := newTestList(ListOptions{})

	src, err := l.AddDataset(testDataset(types.CTImageStorage, "1.2.3.1"), "", DoNothing, true)
	require.NoError(t, err)
	require.NotNil(t, src.Dataset())
	assert.Equal(t, types.ExplicitVRLittleEndian, l.Entry(0).TransferSyntaxUID)
	assert.Equal(t, "(in memory)", l.Entry(0).SourceName())

	_, err = l.AddDataset(testDataset("", "1.2.3.2"), "", DoNothing, false)
	assert.True(t, dicomerrors.IsValidationCode(err, dicomerrors.EmptySOPClass))

	_, err = l.AddDataset(nil, "", DoNothing, false)
	assert.Error(t, err)
	assert.Equal(t, 1, l.Len())
}

func TestRemove(t *testing.T) {
	l := newTestList(ListOptions{})
	memoryEntry(l, types.CTImageStorage, "1.2.3.1", types.ExplicitVRLittleEndian)
	memoryEntry(l, types.CTImageStorage, "1.2.3.2", types.ExplicitVRLittleEndian)
	memoryEntry(l, types.CTImageStorage, "1.2.3.1", types.ExplicitVRLittleEndian)
	memoryEntry(l, types.CTImageStorage, "1.2.3.3", types.ExplicitVRLittleEndian)

	l.cursor = 2
	require.NoError(t, l.Remove(types.CTImageStorage, "1.2.3.1", false))
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 1, l.Cursor(), "cursor keeps pointing at the same entry")
	assert.Equal(t, "1.2.3.1", l.Entry(1).SOPInstanceUID)

	require.NoError(t, l.Remove(types.CTImageStorage, "1.2.3.1", true))
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 1, l.Cursor(), "cursor moves to the entry after the removed one")
	assert.Equal(t, "1.2.3.3", l.Entry(l.Cursor()).SOPInstanceUID)

	err := l.Remove(types.CTImageStorage, "1.2.3.1", true)
	assert.ErrorIs(t, err, dicomerrors.ErrEntryNotFound)
	err = l.Remove(types.MRImageStorage, "1.2.3.2", false)
	assert.ErrorIs(t, err, dicomerrors.ErrEntryNotFound, "class must match too")
}

func TestRemove_Ownership(t *testing.T) {
	tests := []struct {
		mode    HandlingMode
		release bool
	}{
		{DoNothing, false},
		{CompactAfterSend, false},
		{DeleteAfterSend, true},
		{DeleteAfterRemove, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			l := newTestList(ListOptions{})
			src, err := l.AddDataset(testDataset(types.CTImageStorage, "1.2.3.1"), "", tt.mode, true)
			require.NoError(t, err)

			releases := 0
			src.OnRelease = func(*dicom.Dataset) { releases++ }

			require.NoError(t, l.Remove(types.CTImageStorage, "1.2.3.1", false))
			assert.ErrorIs(t, l.Remove(types.CTImageStorage, "1.2.3.1", false), dicomerrors.ErrEntryNotFound)

			if tt.release {
				assert.Equal(t, 1, releases)
				assert.True(t, src.Released())
				assert.Nil(t, src.Dataset())
			} else {
				assert.Zero(t, releases)
				assert.NotNil(t, src.Dataset())
			}
		})
	}
}

func TestRemoveAll(t *testing.T) {
	l := newTestList(ListOptions{})
	src, err := l.AddDataset(testDataset(types.CTImageStorage, "1.2.3.1"), "", DeleteAfterRemove, true)
	require.NoError(t, err)
	memoryEntry(l, types.CTImageStorage, "1.2.3.2", types.ExplicitVRLittleEndian)
	l.cursor = 2

	l.RemoveAll()
	assert.Zero(t, l.Len())
	assert.Zero(t, l.Cursor())
	assert.True(t, src.Released())
}

func TestResetSentStatus(t *testing.T) {
	l := newTestList(ListOptions{})
	for _, uid := range []string{"1.2.3.1", "1.2.3.2", "1.2.3.3"} {
		e := memoryEntry(l, types.CTImageStorage, uid, types.ExplicitVRLittleEndian)
		e.Sent = true
		e.ChannelID = 1
	}
	l.cursor = 3
	assert.Zero(t, l.CountPending())

	l.ResetSentStatus(true)
	assert.Equal(t, 3, l.CountPending())
	assert.Zero(t, l.Cursor())
	for _, e := range l.Entries() {
		assert.Equal(t, byte(1), e.ChannelID)
	}

	l.ResetSentStatus(false)
	for _, e := range l.Entries() {
		assert.Zero(t, e.ChannelID)
		assert.False(t, e.Sent)
	}
}

func TestHandlingMode_String(t *testing.T) {
	assert.Equal(t, "delete-after-remove", DeleteAfterRemove.String())
	assert.Equal(t, "HandlingMode(9)", HandlingMode(9).String())
}
