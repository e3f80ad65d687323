package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caio-sobreiro/dicomsend/dicom"
	"github.com/caio-sobreiro/dicomsend/types"
)

// ErrAbort makes the server abort the association instead of responding
var ErrAbort = errors.New("dicomserver: abort association")

// StoreRequest is one received C-STORE with the data set as sent on the wire
type StoreRequest struct {
	CallingAETitle          string
	ContextID               byte
	SOPClassUID             string
	SOPInstanceUID          string
	TransferSyntaxUID       string
	MoveOriginatorAETitle   string
	MoveOriginatorMessageID uint16
	Data                    []byte
}

// StoreHandler decides the status returned for each C-STORE. A non-nil
// error is sent as the error comment; ErrAbort aborts the association.
type StoreHandler interface {
	HandleStore(ctx context.Context, req *StoreRequest) (uint16, error)
}

// HandlerFunc adapts a function to StoreHandler
type HandlerFunc func(ctx context.Context, req *StoreRequest) (uint16, error)

// HandleStore calls f(ctx, req)
func (f HandlerFunc) HandleStore(ctx context.Context, req *StoreRequest) (uint16, error) {
	return f(ctx, req)
}

// DirectoryHandler writes every received object as a Part 10 file named
// after its SOP instance UID.
type DirectoryHandler struct {
	Dir string
}

// HandleStore implements StoreHandler
func (h *DirectoryHandler) HandleStore(ctx context.Context, req *StoreRequest) (uint16, error) {
	if err := types.ValidateUID(req.SOPInstanceUID); err != nil {
		return types.StatusStoreErrorCannotUnderstand, fmt.Errorf("invalid SOP instance UID: %w", err)
	}

	file := dicom.BuildPart10(dicom.FileMeta{
		MediaStorageSOPClassUID:    req.SOPClassUID,
		MediaStorageSOPInstanceUID: req.SOPInstanceUID,
		TransferSyntaxUID:          req.TransferSyntaxUID,
		SourceAETitle:              strings.TrimSpace(req.CallingAETitle),
	}, req.Data)

	path := filepath.Join(h.Dir, req.SOPInstanceUID+".dcm")
	if err := os.WriteFile(path, file, 0o644); err != nil {
		return types.StatusStoreRefusedOutOfResources, err
	}
	return types.StatusSuccess, nil
}
