// Package storescu sends DICOM objects to a storage SCP. Objects are queued
// on a TransferList, assigned to presentation contexts by a Planner and
// transmitted over one or more associations by an Engine.
package storescu

import (
	"fmt"
	"path/filepath"

	"github.com/caio-sobreiro/dicomsend/dicom"
	"github.com/caio-sobreiro/dicomsend/types"
)

// ReadMode selects how a file-backed object is interpreted
type ReadMode = dicom.ReadMode

const (
	ReadAuto        = dicom.ReadAuto
	ReadFileOnly    = dicom.ReadFileOnly
	ReadDatasetOnly = dicom.ReadDatasetOnly
)

// HandlingMode states who owns an in-memory data set and what happens to it
// once it has been sent or removed from the list.
type HandlingMode int

const (
	// DoNothing leaves the data set untouched; the caller owns it
	DoNothing HandlingMode = iota
	// CompactAfterSend drops cached encodings after sending
	CompactAfterSend
	// DeleteAfterSend releases the data set after sending
	DeleteAfterSend
	// DeleteAfterRemove releases the data set when its entry is removed
	DeleteAfterRemove
)

func (m HandlingMode) String() string {
	switch m {
	case DoNothing:
		return "do-nothing"
	case CompactAfterSend:
		return "compact-after-send"
	case DeleteAfterSend:
		return "delete-after-send"
	case DeleteAfterRemove:
		return "delete-after-remove"
	default:
		return fmt.Sprintf("HandlingMode(%d)", int(m))
	}
}

// Source is where an entry's data set comes from: a *FileSource or a
// *MemorySource.
type Source interface {
	Name() string
	source()
}

// FileSource is an object stored in a file
type FileSource struct {
	Path     string
	ReadMode ReadMode
}

func (s *FileSource) Name() string { return s.Path }
func (s *FileSource) source()      {}

// MemorySource is an already decoded data set. When the handling mode hands
// ownership to the list, OnRelease is called once the data set is released;
// after that the source no longer references it.
type MemorySource struct {
	Handling  HandlingMode
	OnRelease func(*dicom.Dataset)

	dataset  *dicom.Dataset
	released bool
}

// NewMemorySource wraps ds with the given handling mode
func NewMemorySource(ds *dicom.Dataset, mode HandlingMode) *MemorySource {
	return &MemorySource{Handling: mode, dataset: ds}
}

func (s *MemorySource) Name() string { return "(in memory)" }
func (s *MemorySource) source()      {}

// Dataset returns the data set, or nil once it has been released
func (s *MemorySource) Dataset() *dicom.Dataset {
	return s.dataset
}

// Released reports whether the data set has been released
func (s *MemorySource) Released() bool {
	return s.released
}

func (s *MemorySource) release() {
	if s.released {
		return
	}
	s.released = true
	ds := s.dataset
	s.dataset = nil
	if s.OnRelease != nil && ds != nil {
		s.OnRelease(ds)
	}
}

// afterSend applies the post-send side effect of the handling mode
func (s *MemorySource) afterSend() {
	switch s.Handling {
	case CompactAfterSend:
		if s.dataset != nil {
			s.dataset.Compact()
		}
	case DeleteAfterSend:
		s.release()
	}
}

// afterRemove releases data sets the list owns
func (s *MemorySource) afterRemove() {
	if s.Handling == DeleteAfterRemove || s.Handling == DeleteAfterSend {
		s.release()
	}
}

// TransferEntry is one object queued for transmission
type TransferEntry struct {
	SOPClassUID       string
	SOPInstanceUID    string
	TransferSyntaxUID string
	Source            Source

	// Uncompressed is true when TransferSyntaxUID is one of the three
	// native encodings.
	Uncompressed bool

	// Transfer state. ChannelID 0 means not planned for the current session
	// and Session 0 means never sent.
	ChannelID             byte
	Session               int
	Sent                  bool
	Status                uint16
	NetworkTransferSyntax string
	Size                  int64
}

func newEntry(id dicom.ObjectIdentity, src Source) *TransferEntry {
	return &TransferEntry{
		SOPClassUID:       id.SOPClassUID,
		SOPInstanceUID:    id.SOPInstanceUID,
		TransferSyntaxUID: id.TransferSyntaxUID,
		Source:            src,
		Uncompressed:      types.IsUncompressed(id.TransferSyntaxUID),
	}
}

// SourceName is the file name, or a marker for in-memory objects
func (e *TransferEntry) SourceName() string {
	if fs, ok := e.Source.(*FileSource); ok {
		return filepath.Base(fs.Path)
	}
	return e.Source.Name()
}

// markNotSent records a locally synthesized outcome for an object that
// could not be transmitted.
func (e *TransferEntry) markNotSent(status uint16) {
	e.Sent = true
	e.Status = status
}

func (e *TransferEntry) memorySource() (*MemorySource, bool) {
	ms, ok := e.Source.(*MemorySource)
	return ms, ok
}
