package client

import (
	"context"
	"fmt"

	"github.com/caio-sobreiro/dicomsend/dimse"
	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/types"
)

// CEchoResponse represents the result of a C-ECHO operation.
type CEchoResponse struct {
	Status    uint16
	MessageID uint16
}

// SendCEcho performs a DICOM C-ECHO (verification) request and returns the response status.
func (a *Association) SendCEcho(ctx context.Context) (*CEchoResponse, error) {
	if a.state != stateEstablished {
		return nil, dicomerrors.ErrNotOpen
	}

	presContextID, err := a.GetPresentationContextID(types.VerificationSOPClass)
	if err != nil {
		return nil, err
	}

	command := &types.Message{
		CommandField:        types.CEchoRQ,
		MessageID:           a.nextMessageID(),
		CommandDataSetType:  types.NoDataSet,
		AffectedSOPClassUID: types.VerificationSOPClass,
	}

	commandData, err := dimse.EncodeCommand(command)
	if err != nil {
		return nil, fmt.Errorf("failed to encode C-ECHO command: %w", err)
	}

	var msg *types.Message
	err = a.exchange(ctx, "C-ECHO", func() error {
		if err := dimse.SendDIMSEMessage(a.conn, presContextID, a.peerMaxPDU, commandData, nil); err != nil {
			return err
		}
		var err error
		msg, _, err = dimse.ReceiveDIMSEMessage(a.conn)
		return err
	})
	if err != nil {
		_ = a.Abort()
		return nil, err
	}

	if msg.CommandField != types.CEchoRSP {
		return nil, fmt.Errorf("%w: unexpected command 0x%04x (expected C-ECHO-RSP)",
			dicomerrors.ErrInvalidMessage, msg.CommandField)
	}

	return &CEchoResponse{
		Status:    msg.Status,
		MessageID: msg.MessageIDBeingRespondedTo,
	}, nil
}

// Echo opens an association proposing only verification, sends one C-ECHO
// and releases.
func Echo(ctx context.Context, address string, config Config) (*CEchoResponse, error) {
	assoc, err := Connect(ctx, address, config,
		[]string{types.VerificationSOPClass}, []string{types.ImplicitVRLittleEndian})
	if err != nil {
		return nil, err
	}

	rsp, err := assoc.SendCEcho(ctx)
	if err != nil {
		return nil, err
	}
	if err := assoc.Release(ctx); err != nil {
		return rsp, err
	}
	return rsp, nil
}
