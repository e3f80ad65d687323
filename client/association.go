package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/pdu"
)

// MaxPresentationContexts is the number of odd context IDs in 1..255
const MaxPresentationContexts = 128

// Implementation identification sent in A-ASSOCIATE-RQ
const (
	ImplementationClassUID    = "1.2.826.0.1.3680043.10.1247.1"
	ImplementationVersionName = "DICOMSEND_1.0"
)

type state int

const (
	stateClosed state = iota
	stateConnected
	stateEstablished
)

// Association represents a client-side DICOM association. Presentation
// contexts are proposed one by one, then negotiated in a single exchange.
type Association struct {
	config     Config
	conn       net.Conn
	state      state
	proposals  []*PresentationContext
	peerMaxPDU uint32
	messageID  uint16
	logger     *slog.Logger
}

// PresentationContext holds a proposed presentation context and, once
// negotiated, the peer's answer.
type PresentationContext struct {
	ID               byte
	AbstractSyntax   string
	TransferSyntaxes []string
	TransferSyntax   string
	Result           byte
	Accepted         bool
}

// Config holds client configuration
type Config struct {
	CallingAETitle string
	CalledAETitle  string
	MaxPDULength   uint32
	ConnectTimeout time.Duration // Timeout for establishing connection (default: 30s)
	ReadTimeout    time.Duration // Timeout for read operations (default: 60s)
	WriteTimeout   time.Duration // Timeout for write operations (default: 60s)
	Logger         *slog.Logger  // Logger for the association (default: slog.Default())
}

func (c *Config) setDefaults() {
	if c.MaxPDULength == 0 {
		c.MaxPDULength = 16384 // Default 16KB
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 30 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 60 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 60 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// New creates an association that is not yet connected
func New(config Config) *Association {
	config.setDefaults()
	return &Association{
		config: config,
		logger: config.Logger,
	}
}

// Connect opens a transport to address and negotiates the given
// presentation contexts, each proposed with the listed transfer syntaxes.
func Connect(ctx context.Context, address string, config Config, abstractSyntaxes []string, transferSyntaxes []string) (*Association, error) {
	assoc := New(config)
	for _, abstract := range abstractSyntaxes {
		if _, err := assoc.ProposeContext(abstract, transferSyntaxes); err != nil {
			return nil, err
		}
	}
	if err := assoc.Open(ctx, address); err != nil {
		return nil, err
	}
	if _, err := assoc.Negotiate(ctx); err != nil {
		assoc.closeConn()
		return nil, err
	}
	return assoc, nil
}

// ClearProposals drops every proposed presentation context
func (a *Association) ClearProposals() {
	a.proposals = nil
}

// ProposeContext adds a presentation context and returns its odd ID
func (a *Association) ProposeContext(abstractSyntax string, transferSyntaxes []string) (byte, error) {
	if a.state == stateEstablished {
		return 0, errors.New("presentation contexts cannot be proposed on an established association")
	}
	if len(a.proposals) >= MaxPresentationContexts {
		return 0, dicomerrors.ErrTooManyContexts
	}
	if abstractSyntax == "" || len(transferSyntaxes) == 0 {
		return 0, fmt.Errorf("presentation context needs an abstract syntax and at least one transfer syntax")
	}

	id := byte(2*len(a.proposals) + 1)
	a.proposals = append(a.proposals, &PresentationContext{
		ID:               id,
		AbstractSyntax:   abstractSyntax,
		TransferSyntaxes: append([]string(nil), transferSyntaxes...),
	})
	return id, nil
}

// Open establishes the TCP connection
func (a *Association) Open(ctx context.Context, address string) error {
	if a.state != stateClosed {
		return errors.New("association transport already open")
	}

	dialer := &net.Dialer{
		Timeout: a.config.ConnectTimeout,
	}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return dicomerrors.NewNetworkError("connect", err)
	}

	a.conn = conn
	a.state = stateConnected
	a.logger.Debug("Transport connected", "remote_addr", address)
	return nil
}

// Negotiate sends A-ASSOCIATE-RQ with the proposed contexts and returns how
// many the peer accepted. A rejection yields an AssociationError and closes
// the transport.
func (a *Association) Negotiate(ctx context.Context) (int, error) {
	if a.state != stateConnected {
		return 0, dicomerrors.ErrNotOpen
	}
	if len(a.proposals) == 0 {
		return 0, dicomerrors.ErrNoPresentationCtx
	}

	rq := &pdu.AssociateRQ{
		CalledAETitle:  a.config.CalledAETitle,
		CallingAETitle: a.config.CallingAETitle,
		UserInfo: pdu.UserInformation{
			MaxPDULength:              a.config.MaxPDULength,
			ImplementationClassUID:    ImplementationClassUID,
			ImplementationVersionName: ImplementationVersionName,
		},
	}
	for _, pc := range a.proposals {
		pc.TransferSyntax, pc.Result, pc.Accepted = "", 0, false
		rq.PresentationContexts = append(rq.PresentationContexts, pdu.PresentationContextRQ{
			ID:               pc.ID,
			AbstractSyntax:   pc.AbstractSyntax,
			TransferSyntaxes: pc.TransferSyntaxes,
		})
	}

	var reply *pdu.PDU
	err := a.exchange(ctx, "associate", func() error {
		if err := pdu.WritePDU(a.conn, pdu.TypeAssociateRQ, rq.Encode()); err != nil {
			return err
		}
		var err error
		reply, err = pdu.ReadPDU(a.conn, 0)
		return err
	})
	if err != nil {
		a.closeConn()
		return 0, err
	}

	switch reply.Type {
	case pdu.TypeAssociateAC:
	case pdu.TypeAssociateRJ:
		a.closeConn()
		rj, err := pdu.ParseAssociateRJ(reply.Data)
		if err != nil {
			return 0, err
		}
		return 0, rj.Err()
	case pdu.TypeAbort:
		a.closeConn()
		abort, err := pdu.ParseAbort(reply.Data)
		if err != nil {
			return 0, err
		}
		return 0, dicomerrors.NewAbortError(abort.Source, abort.Reason)
	default:
		a.closeConn()
		return 0, dicomerrors.NewPDUError(reply.Type, "unexpected reply to A-ASSOCIATE-RQ")
	}

	ac, err := pdu.ParseAssociateAC(reply.Data)
	if err != nil {
		a.closeConn()
		return 0, err
	}

	a.peerMaxPDU = ac.UserInfo.MaxPDULength
	a.state = stateEstablished

	accepted := 0
	for _, pc := range a.proposals {
		answer, ok := ac.Context(pc.ID)
		if !ok {
			continue
		}
		pc.Result = answer.Result
		pc.Accepted = answer.Accepted()
		if pc.Accepted {
			pc.TransferSyntax = answer.TransferSyntax
			accepted++
		}
		a.logger.Debug("Presentation context negotiation",
			"context_id", pc.ID,
			"abstract_syntax", pc.AbstractSyntax,
			"result", pdu.ResultString(pc.Result),
			"accepted", pc.Accepted,
			"transfer_syntax", pc.TransferSyntax)
	}

	a.logger.Info("DICOM association established",
		"calling_ae", a.config.CallingAETitle,
		"called_ae", a.config.CalledAETitle,
		"proposed", len(a.proposals),
		"accepted", accepted,
		"peer_max_pdu", a.peerMaxPDU)
	return accepted, nil
}

// Established reports whether the association is negotiated and usable
func (a *Association) Established() bool {
	return a.state == stateEstablished
}

// Context returns the presentation context with the given ID
func (a *Association) Context(id byte) (PresentationContext, bool) {
	for _, pc := range a.proposals {
		if pc.ID == id {
			return *pc, true
		}
	}
	return PresentationContext{}, false
}

// AcceptedTransferSyntax returns the transfer syntax the peer selected for a
// presentation context, or false when the context was not accepted.
func (a *Association) AcceptedTransferSyntax(id byte) (string, bool) {
	pc, ok := a.Context(id)
	if !ok || !pc.Accepted {
		return "", false
	}
	return pc.TransferSyntax, true
}

// GetPresentationContextID finds an accepted presentation context for the given abstract syntax
func (a *Association) GetPresentationContextID(abstractSyntax string) (byte, error) {
	for _, pc := range a.proposals {
		if pc.AbstractSyntax == abstractSyntax && pc.Accepted {
			return pc.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: abstract syntax %s", dicomerrors.ErrNoPresentationCtx, abstractSyntax)
}

// Release performs the A-RELEASE handshake and closes the transport
func (a *Association) Release(ctx context.Context) error {
	if a.state != stateEstablished {
		a.closeConn()
		return nil
	}

	err := a.exchange(ctx, "release", func() error {
		if err := pdu.WritePDU(a.conn, pdu.TypeReleaseRQ, pdu.ReleaseData()); err != nil {
			return err
		}
		reply, err := pdu.ReadPDU(a.conn, 0)
		if err != nil {
			return err
		}
		switch reply.Type {
		case pdu.TypeReleaseRP:
			return nil
		case pdu.TypeAbort:
			abort, _ := pdu.ParseAbort(reply.Data)
			return dicomerrors.NewAbortError(abort.Source, abort.Reason)
		default:
			return dicomerrors.NewPDUError(reply.Type, "unexpected reply to A-RELEASE-RQ")
		}
	})
	a.closeConn()
	if err != nil {
		return err
	}

	a.logger.Debug("DICOM association released")
	return nil
}

// Abort sends A-ABORT and closes the transport
func (a *Association) Abort() error {
	if a.state == stateClosed {
		return nil
	}
	_ = a.conn.SetWriteDeadline(time.Now().Add(a.config.WriteTimeout))
	err := pdu.WritePDU(a.conn, pdu.TypeAbort, pdu.Abort{Source: pdu.AbortSourceServiceUser}.Encode())
	a.closeConn()
	a.logger.Debug("DICOM association aborted")
	return err
}

// Close gracefully closes the association
func (a *Association) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.ReadTimeout)
	defer cancel()
	return a.Release(ctx)
}

func (a *Association) closeConn() {
	if a.conn != nil {
		_ = a.conn.Close()
	}
	a.conn = nil
	a.state = stateClosed
}

// exchange runs one blocking request/response step with the configured
// deadlines, cutting it short when ctx ends first.
func (a *Association) exchange(ctx context.Context, op string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return dicomerrors.NewNetworkError(op, fmt.Errorf("%w: %w", dicomerrors.ErrOperationCanceled, err))
	}

	now := time.Now()
	readDeadline := now.Add(a.config.ReadTimeout)
	writeDeadline := now.Add(a.config.WriteTimeout)
	if d, ok := ctx.Deadline(); ok {
		if d.Before(readDeadline) {
			readDeadline = d
		}
		if d.Before(writeDeadline) {
			writeDeadline = d
		}
	}
	if err := a.conn.SetReadDeadline(readDeadline); err != nil {
		return dicomerrors.NewNetworkError(op, err)
	}
	if err := a.conn.SetWriteDeadline(writeDeadline); err != nil {
		return dicomerrors.NewNetworkError(op, err)
	}

	conn := a.conn
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	err := fn()
	stop()

	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return dicomerrors.NewNetworkError(op, fmt.Errorf("%w: %w", dicomerrors.ErrOperationCanceled, ctxErr))
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return dicomerrors.NewTimeoutError(op, a.config.ReadTimeout.String())
	}
	if dicomerrors.IsFatal(err) {
		return err
	}
	var assocErr *dicomerrors.AssociationError
	if errors.As(err, &assocErr) {
		return err
	}
	return dicomerrors.NewNetworkError(op, err)
}
