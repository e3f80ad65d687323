package client

import (
	"context"
	"fmt"

	"github.com/caio-sobreiro/dicomsend/dimse"
	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/types"
)

// CStoreRequest represents a C-STORE request. Data must already be encoded
// in the transfer syntax accepted for the presentation context.
type CStoreRequest struct {
	SOPClassUID    string
	SOPInstanceUID string
	Data           []byte
	Priority       uint16

	MoveOriginatorAETitle   string
	MoveOriginatorMessageID uint16
}

// CStoreResponse represents a C-STORE response
type CStoreResponse struct {
	Status            uint16
	MessageID         uint16
	SOPClassUID       string
	SOPInstanceUID    string
	ErrorComment      string
	TransferSyntaxUID string
}

// Err returns a DIMSEError unless the status is success or warning
func (r *CStoreResponse) Err() error {
	if types.IsAcceptableStoreStatus(r.Status) {
		return nil
	}
	msg := types.StatusString(r.Status)
	if r.ErrorComment != "" {
		msg += ": " + r.ErrorComment
	}
	return dicomerrors.NewDIMSEError("C-STORE", r.Status, msg)
}

// SendCStore sends one C-STORE-RQ on the given presentation context and
// waits for its response. Transport failures abort the association.
func (a *Association) SendCStore(ctx context.Context, presContextID byte, req *CStoreRequest) (*CStoreResponse, error) {
	if a.state != stateEstablished {
		return nil, dicomerrors.ErrNotOpen
	}

	pc, ok := a.Context(presContextID)
	if !ok || !pc.Accepted {
		return nil, fmt.Errorf("%w: context %d", dicomerrors.ErrNoPresentationCtx, presContextID)
	}
	if pc.AbstractSyntax != req.SOPClassUID {
		return nil, fmt.Errorf("%w: context %d carries %s, not %s",
			dicomerrors.ErrNoPresentationCtx, presContextID, pc.AbstractSyntax, req.SOPClassUID)
	}

	messageID := a.nextMessageID()
	var rsp *dimse.CStoreResponse
	err := a.exchange(ctx, "C-STORE", func() error {
		var err error
		rsp, err = dimse.SendCStore(a.conn, presContextID, a.peerMaxPDU, &dimse.CStoreRequest{
			SOPClassUID:             req.SOPClassUID,
			SOPInstanceUID:          req.SOPInstanceUID,
			Data:                    req.Data,
			MessageID:               messageID,
			Priority:                req.Priority,
			MoveOriginatorAETitle:   req.MoveOriginatorAETitle,
			MoveOriginatorMessageID: req.MoveOriginatorMessageID,
		})
		return err
	})
	if err != nil {
		// the message stream is out of step with the peer
		_ = a.Abort()
		return nil, err
	}

	a.logger.Debug("Received C-STORE-RSP",
		"message_id", rsp.MessageID,
		"sop_instance", req.SOPInstanceUID,
		"status", fmt.Sprintf("0x%04X", rsp.Status))

	return &CStoreResponse{
		Status:            rsp.Status,
		MessageID:         rsp.MessageID,
		SOPClassUID:       rsp.SOPClassUID,
		SOPInstanceUID:    rsp.SOPInstanceUID,
		ErrorComment:      rsp.ErrorComment,
		TransferSyntaxUID: pc.TransferSyntax,
	}, nil
}

func (a *Association) nextMessageID() uint16 {
	a.messageID++
	if a.messageID == 0 {
		a.messageID = 1
	}
	return a.messageID
}
