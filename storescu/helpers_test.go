package storescu

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caio-sobreiro/dicomsend/client"
	"github.com/caio-sobreiro/dicomsend/dicom"
	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/types"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestList(opts ListOptions) *TransferList {
	if opts.Logger == nil {
		opts.Logger = quietLogger
	}
	return NewTransferList(opts)
}

// testDataset builds a small data set with the given identity
func testDataset(sopClass, sopInstance string) *dicom.Dataset {
	ds := dicom.NewDataset()
	ds.AddElement(dicom.SOPClassUIDTag, dicom.VR_UI, sopClass)
	ds.AddElement(dicom.SOPInstanceUIDTag, dicom.VR_UI, sopInstance)
	ds.AddElement(dicom.Tag{Group: 0x0010, Element: 0x0010}, dicom.VR_PN, "Doe^John")
	ds.AddElement(dicom.Tag{Group: 0x0010, Element: 0x0020}, dicom.VR_LO, "PID-1")
	return ds
}

// writePart10 stores a data set as a Part 10 file in dir. Compressed
// syntaxes get the explicit VR little endian body with a declared syntax,
// which is all planning and peeking look at.
func writePart10(t *testing.T, dir, name, sopClass, sopInstance, syntax string) string {
	t.Helper()

	bodySyntax := syntax
	if !types.IsUncompressed(syntax) {
		bodySyntax = types.ExplicitVRLittleEndian
	}
	body, err := testDataset(sopClass, sopInstance).Encode(bodySyntax)
	require.NoError(t, err)

	data := dicom.BuildPart10(dicom.FileMeta{
		MediaStorageSOPClassUID:    sopClass,
		MediaStorageSOPInstanceUID: sopInstance,
		TransferSyntaxUID:          syntax,
	}, body)

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// memoryEntry appends an entry without going through admission, for tests
// that only exercise planning.
func memoryEntry(l *TransferList, sopClass, sopInstance, syntax string) *TransferEntry {
	entry := newEntry(dicom.ObjectIdentity{
		SOPClassUID:       sopClass,
		SOPInstanceUID:    sopInstance,
		TransferSyntaxUID: syntax,
	}, NewMemorySource(testDataset(sopClass, sopInstance), DoNothing))
	l.entries = append(l.entries, entry)
	return entry
}

type proposal struct {
	id       byte
	abstract string
	syntaxes []string
}

// fakeAssociation is a scripted peer. By default it accepts every context
// with its first proposed syntax and answers every store with success.
type fakeAssociation struct {
	accept       func(p proposal) (string, bool)
	status       func(req *client.CStoreRequest) uint16
	sendErr      func(req *client.CStoreRequest) error
	openErr      error
	negotiateErr error

	proposals []proposal
	accepted  map[byte]string
	requests  []*client.CStoreRequest
	syntaxes  []string
	opened    int
	released  int
	aborted   int
}

func (f *fakeAssociation) ClearProposals() {
	f.proposals = nil
}

func (f *fakeAssociation) ProposeContext(abstractSyntax string, transferSyntaxes []string) (byte, error) {
	if len(f.proposals) >= client.MaxPresentationContexts {
		return 0, dicomerrors.ErrTooManyContexts
	}
	id := byte(2*len(f.proposals) + 1)
	f.proposals = append(f.proposals, proposal{id, abstractSyntax, transferSyntaxes})
	return id, nil
}

func (f *fakeAssociation) proposal(id byte) (proposal, bool) {
	for _, p := range f.proposals {
		if p.id == id {
			return p, true
		}
	}
	return proposal{}, false
}

func (f *fakeAssociation) Open(ctx context.Context, address string) error {
	f.opened++
	return f.openErr
}

func (f *fakeAssociation) Negotiate(ctx context.Context) (int, error) {
	if f.negotiateErr != nil {
		return 0, f.negotiateErr
	}
	f.accepted = make(map[byte]string)
	for _, p := range f.proposals {
		ts, ok := p.syntaxes[0], true
		if f.accept != nil {
			ts, ok = f.accept(p)
		}
		if ok {
			f.accepted[p.id] = ts
		}
	}
	return len(f.accepted), nil
}

func (f *fakeAssociation) AcceptedTransferSyntax(id byte) (string, bool) {
	ts, ok := f.accepted[id]
	return ts, ok
}

func (f *fakeAssociation) SendCStore(ctx context.Context, id byte, req *client.CStoreRequest) (*client.CStoreResponse, error) {
	if f.sendErr != nil {
		if err := f.sendErr(req); err != nil {
			return nil, err
		}
	}
	f.requests = append(f.requests, req)
	f.syntaxes = append(f.syntaxes, f.accepted[id])

	status := uint16(types.StatusSuccess)
	if f.status != nil {
		status = f.status(req)
	}
	return &client.CStoreResponse{Status: status, SOPInstanceUID: req.SOPInstanceUID, TransferSyntaxUID: f.accepted[id]}, nil
}

func (f *fakeAssociation) Release(ctx context.Context) error {
	f.released++
	return nil
}

func (f *fakeAssociation) Abort() error {
	f.aborted++
	return nil
}

func (f *fakeAssociation) sentInstances() []string {
	var uids []string
	for _, req := range f.requests {
		uids = append(uids, req.SOPInstanceUID)
	}
	return uids
}

// acceptNative accepts only the native syntaxes, preferring the first one
// proposed.
func acceptNative(p proposal) (string, bool) {
	for _, ts := range p.syntaxes {
		if types.IsUncompressed(ts) {
			return ts, true
		}
	}
	return "", false
}
