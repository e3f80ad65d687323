package storescu

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/caio-sobreiro/dicomsend/dicom"
	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/types"
)

// ListOptions holds admission policies for a TransferList
type ListOptions struct {
	// HaltOnInvalidFile makes a batch admission stop at the first object
	// that cannot be admitted. Otherwise such objects are skipped.
	HaltOnInvalidFile bool
	// ReadFromDICOMDIR makes AddFile expand a DICOMDIR into the objects it
	// references.
	ReadFromDICOMDIR bool
	Registry         *types.Registry
	Logger           *slog.Logger
}

// TransferList is an ordered queue of objects with a cursor marking the
// first entry not yet handled by a session.
type TransferList struct {
	entries   []*TransferEntry
	cursor    int
	validator Validator
	opts      ListOptions
	logger    *slog.Logger
}

// NewTransferList creates an empty list
func NewTransferList(opts ListOptions) *TransferList {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = types.DefaultRegistry()
	}
	return &TransferList{
		opts:      opts,
		logger:    opts.Logger,
		validator: Validator{Registry: opts.Registry, Logger: opts.Logger},
	}
}

// Len returns the number of entries
func (l *TransferList) Len() int {
	return len(l.entries)
}

// Entry returns the entry at index i
func (l *TransferList) Entry(i int) *TransferEntry {
	return l.entries[i]
}

// Entries returns the entries in list order. The slice is a copy; the
// entries are shared.
func (l *TransferList) Entries() []*TransferEntry {
	return append([]*TransferEntry(nil), l.entries...)
}

// Cursor returns the index of the first entry not yet handled
func (l *TransferList) Cursor() int {
	return l.cursor
}

// AddFile admits the object stored at path. A DICOMDIR is expanded into
// the objects it references when the list reads from directories.
func (l *TransferList) AddFile(path string, mode ReadMode, strict bool) error {
	_, _, err := l.addFile(path, mode, strict)
	return err
}

// AddFiles admits a batch of files and reports how many objects were added
// and skipped. With HaltOnInvalidFile the first failure ends the batch.
func (l *TransferList) AddFiles(paths []string, mode ReadMode, strict bool) (added, skipped int, err error) {
	for _, path := range paths {
		a, s, err := l.addFile(path, mode, strict)
		added += a
		skipped += s
		if err == nil {
			continue
		}
		if l.opts.HaltOnInvalidFile {
			return added, skipped, err
		}
		skipped++
		l.logger.Warn("Skipping file", "path", path, "error", err)
	}
	return added, skipped, nil
}

func (l *TransferList) addFile(path string, mode ReadMode, strict bool) (added, skipped int, err error) {
	id, err := dicom.PeekFile(path, mode)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", path, err)
	}

	if id.SOPClassUID == types.MediaStorageDirectoryStorage {
		if !l.opts.ReadFromDICOMDIR {
			return 0, 0, dicomerrors.NewValidationError(dicomerrors.InvalidSOPClass, id.SOPClassUID,
				fmt.Sprintf("%s is a DICOMDIR and directory reading is disabled", path))
		}
		return l.addDirectory(path, mode, strict)
	}

	if err := l.validator.Validate(id.SOPClassUID, id.SOPInstanceUID, id.TransferSyntaxUID, strict); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", path, err)
	}

	l.entries = append(l.entries, newEntry(id, &FileSource{Path: path, ReadMode: mode}))
	l.logger.Debug("Added file to transfer list",
		"path", path,
		"sop_class", id.SOPClassUID,
		"sop_instance", id.SOPInstanceUID,
		"transfer_syntax", id.TransferSyntaxUID)
	return 1, 0, nil
}

// addDirectory admits every object a DICOMDIR references, never the
// DICOMDIR itself.
func (l *TransferList) addDirectory(path string, mode ReadMode, strict bool) (added, skipped int, err error) {
	records, err := dicom.ReadDirectoryFile(path)
	if err != nil {
		return 0, 0, err
	}

	dir := filepath.Dir(path)
	l.logger.Debug("Reading objects referenced by DICOMDIR", "path", path, "records", len(records))

	for _, record := range records {
		file := record.Path(dir)
		id := dicom.ObjectIdentity{
			SOPClassUID:       record.SOPClassUID,
			SOPInstanceUID:    record.SOPInstanceUID,
			TransferSyntaxUID: record.TransferSyntaxUID,
		}
		if id.SOPClassUID == "" || id.SOPInstanceUID == "" || id.TransferSyntaxUID == "" {
			// older directories omit some referenced UIDs
			if id, err = dicom.PeekFile(file, mode); err != nil {
				err = fmt.Errorf("%s: %w", file, err)
			}
		}
		if err == nil {
			err = l.validator.Validate(id.SOPClassUID, id.SOPInstanceUID, id.TransferSyntaxUID, strict)
		}
		if err != nil {
			if l.opts.HaltOnInvalidFile {
				return added, skipped, fmt.Errorf("%s: %w", file, err)
			}
			skipped++
			l.logger.Warn("Skipping object referenced by DICOMDIR", "path", file, "error", err)
			err = nil
			continue
		}

		l.entries = append(l.entries, newEntry(id, &FileSource{Path: file, ReadMode: mode}))
		added++
	}
	return added, skipped, nil
}

// AddDataset admits an in-memory data set. An empty transferSyntaxUID means
// the data set has no encoding yet and may be sent in any native one.
func (l *TransferList) AddDataset(ds *dicom.Dataset, transferSyntaxUID string, mode HandlingMode, strict bool) (*MemorySource, error) {
	if ds == nil {
		return nil, dicomerrors.NewValidationError(dicomerrors.EmptySOPClass, "", "nil data set")
	}
	if transferSyntaxUID == "" {
		transferSyntaxUID = types.ExplicitVRLittleEndian
	}

	id := ds.Identity()
	id.TransferSyntaxUID = transferSyntaxUID
	if err := l.validator.Validate(id.SOPClassUID, id.SOPInstanceUID, id.TransferSyntaxUID, strict); err != nil {
		return nil, err
	}

	src := NewMemorySource(ds, mode)
	l.entries = append(l.entries, newEntry(id, src))
	l.logger.Debug("Added data set to transfer list",
		"sop_class", id.SOPClassUID,
		"sop_instance", id.SOPInstanceUID,
		"handling", mode.String())
	return src, nil
}

// Remove deletes entries matching the SOP class and instance, either the
// first match or all of them. Data sets the list owns are released.
func (l *TransferList) Remove(sopClassUID, sopInstanceUID string, all bool) error {
	removed := 0
	kept := l.entries[:0]
	cursor := l.cursor
	for i, entry := range l.entries {
		match := entry.SOPClassUID == sopClassUID && entry.SOPInstanceUID == sopInstanceUID
		if match && (all || removed == 0) {
			removed++
			if i < l.cursor {
				cursor--
			}
			if ms, ok := entry.memorySource(); ok {
				ms.afterRemove()
			}
			continue
		}
		kept = append(kept, entry)
	}
	clear(l.entries[len(kept):])
	l.entries = kept
	l.cursor = cursor

	if removed == 0 {
		return fmt.Errorf("%w: %s (%s)", dicomerrors.ErrEntryNotFound, sopInstanceUID, sopClassUID)
	}
	return nil
}

// RemoveAll empties the list, releasing data sets it owns
func (l *TransferList) RemoveAll() {
	for _, entry := range l.entries {
		if ms, ok := entry.memorySource(); ok {
			ms.afterRemove()
		}
	}
	l.entries = nil
	l.cursor = 0
}

// ResetSentStatus marks every entry unsent and rewinds the cursor. Unless
// the next session is the same one, channel assignments are cleared too.
func (l *TransferList) ResetSentStatus(sameSession bool) {
	for _, entry := range l.entries {
		entry.Sent = false
		if !sameSession {
			entry.ChannelID = 0
		}
	}
	l.cursor = 0
}

// CountPending returns the number of entries not yet sent
func (l *TransferList) CountPending() int {
	n := 0
	for _, entry := range l.entries {
		if !entry.Sent {
			n++
		}
	}
	return n
}

// advance moves the cursor past entries that have been handled
func (l *TransferList) advance() {
	for l.cursor < len(l.entries) && l.entries[l.cursor].Sent {
		l.cursor++
	}
}
