package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/caio-sobreiro/dicomsend/dimse"
	"github.com/caio-sobreiro/dicomsend/pdu"
	"github.com/caio-sobreiro/dicomsend/types"
)

// Option configures a Server instance.
type Option func(*Server)

// WithLogger overrides the logger used by the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithReadTimeout sets the read timeout for client connections.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.ReadTimeout = timeout
	}
}

// WithWriteTimeout sets the write timeout for client connections.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.WriteTimeout = timeout
	}
}

// WithAcceptor replaces the presentation context negotiation policy.
func WithAcceptor(acceptor *pdu.Acceptor) Option {
	return func(s *Server) {
		s.Acceptor = acceptor
	}
}

// WithAnyCalledAETitle accepts associations regardless of the called AE title.
func WithAnyCalledAETitle() Option {
	return func(s *Server) {
		s.AcceptAnyCalledAE = true
	}
}

// Server is a storage SCP: it accepts associations, answers C-ECHO and hands
// every C-STORE to its Handler.
type Server struct {
	AETitle           string
	Handler           StoreHandler
	Acceptor          *pdu.Acceptor // Negotiation policy (default: pdu.NewAcceptor())
	Logger            *slog.Logger
	ReadTimeout       time.Duration // Read timeout for connections (default: none)
	WriteTimeout      time.Duration // Write timeout for connections (default: none)
	AcceptAnyCalledAE bool
}

// New builds a Server with the provided AE title and handler.
func New(aeTitle string, handler StoreHandler, opts ...Option) *Server {
	srv := &Server{AETitle: aeTitle, Handler: handler}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

// ListenAndServe listens on the given address and serves until the context is done or an error occurs.
func ListenAndServe(ctx context.Context, address, aeTitle string, handler StoreHandler, opts ...Option) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	defer listener.Close()

	srv := New(aeTitle, handler, opts...)
	return srv.Serve(ctx, listener)
}

// Serve accepts connections from listener until ctx is cancelled or an unrecoverable error occurs.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if listener == nil {
		return errors.New("dicomserver: listener is required")
	}
	if s == nil {
		return errors.New("dicomserver: server is nil")
	}
	if s.Handler == nil {
		return errors.New("dicomserver: handler is required")
	}
	if s.AETitle == "" {
		return errors.New("dicomserver: AE title is required")
	}

	logger := s.logger()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	logger.Info("DICOM server listening",
		"address", listener.Addr().String(),
		"ae_title", s.AETitle)

	var (
		wg       sync.WaitGroup
		serveErr error
	)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				logger.Warn("Accept timeout", "error", err)
				continue
			}
			serveErr = err
			break
		}

		wg.Add(1)
		go func(c net.Conn) {
			defer wg.Done()
			s.handleConnection(ctx, c, logger)
		}(conn)
	}

	wg.Wait()

	if serveErr != nil {
		return serveErr
	}

	return ctx.Err()
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn, logger *slog.Logger) {
	defer conn.Close()
	logger = logger.With("remote_addr", conn.RemoteAddr().String())
	logger.Info("Accepted DICOM connection")

	// Set timeouts if configured
	if s.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			logger.Warn("Failed to set read deadline", "error", err)
		}
	}
	if s.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.WriteTimeout)); err != nil {
			logger.Warn("Failed to set write deadline", "error", err)
		}
	}

	assoc, err := s.associate(conn, logger)
	if err != nil {
		logger.Warn("Association not established", "error", err)
		return
	}
	if assoc == nil {
		return
	}

	if err := s.serveAssociation(ctx, conn, assoc, logger); err != nil && ctx.Err() == nil {
		logger.Warn("DIMSE connection ended", "error", err)
	} else {
		logger.Info("DIMSE connection closed")
	}
}

// association is the negotiated state of one accepted connection
type association struct {
	callingAETitle string
	peerMaxPDU     uint32
	contexts       map[byte]acceptedContext
}

type acceptedContext struct {
	abstractSyntax string
	transferSyntax string
}

// associate answers the A-ASSOCIATE-RQ. A nil association with a nil error
// means the request was rejected.
func (s *Server) associate(conn net.Conn, logger *slog.Logger) (*association, error) {
	p, err := pdu.ReadPDU(conn, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to read association request: %w", err)
	}
	if p.Type != pdu.TypeAssociateRQ {
		_ = pdu.WritePDU(conn, pdu.TypeAbort, pdu.Abort{Source: pdu.AbortSourceServiceProvider}.Encode())
		return nil, fmt.Errorf("expected A-ASSOCIATE-RQ, got PDU type: 0x%02x", p.Type)
	}

	rq, err := pdu.ParseAssociateRQ(p.Data)
	if err != nil {
		_ = pdu.WritePDU(conn, pdu.TypeAbort, pdu.Abort{Source: pdu.AbortSourceServiceProvider}.Encode())
		return nil, err
	}

	logger.Info("Extracted AE titles from association request",
		"calling_ae", rq.CallingAETitle,
		"called_ae", rq.CalledAETitle)

	if !s.AcceptAnyCalledAE && rq.CalledAETitle != s.AETitle {
		// rejected-permanent, service-user, called-AE-title-not-recognized
		rj := pdu.AssociateRJ{Result: 0x01, Source: 0x01, Reason: 0x07}
		logger.Info("Rejecting association", "called_ae", rq.CalledAETitle)
		return nil, pdu.WritePDU(conn, pdu.TypeAssociateRJ, rj.Encode())
	}

	acceptor := pdu.NewAcceptor()
	if s.Acceptor != nil {
		copied := *s.Acceptor
		acceptor = &copied
	}
	if acceptor.Logger == nil {
		acceptor.Logger = logger
	}
	ac := acceptor.Negotiate(rq)
	ac.CalledAETitle = s.AETitle

	assoc := &association{
		callingAETitle: rq.CallingAETitle,
		peerMaxPDU:     rq.UserInfo.MaxPDULength,
		contexts:       make(map[byte]acceptedContext),
	}
	for i, answer := range ac.PresentationContexts {
		if answer.Accepted() {
			assoc.contexts[answer.ID] = acceptedContext{
				abstractSyntax: rq.PresentationContexts[i].AbstractSyntax,
				transferSyntax: answer.TransferSyntax,
			}
		}
	}

	if err := pdu.WritePDU(conn, pdu.TypeAssociateAC, ac.Encode()); err != nil {
		return nil, fmt.Errorf("failed to send A-ASSOCIATE-AC: %w", err)
	}
	logger.Debug("Sent A-ASSOCIATE-AC", "accepted", len(assoc.contexts))
	return assoc, nil
}

func (s *Server) serveAssociation(ctx context.Context, conn net.Conn, assoc *association, logger *slog.Logger) error {
	for {
		rcv, err := dimse.ReceiveMessage(conn)
		if errors.Is(err, dimse.ErrReleaseRequested) {
			logger.Debug("Processing A-RELEASE-RQ")
			return pdu.WritePDU(conn, pdu.TypeReleaseRP, pdu.ReleaseData())
		}
		if err != nil {
			return err
		}

		pc, ok := assoc.contexts[rcv.ContextID]
		if !ok {
			_ = pdu.WritePDU(conn, pdu.TypeAbort, pdu.Abort{Source: pdu.AbortSourceServiceProvider, Reason: 0x06}.Encode())
			return fmt.Errorf("message on unknown presentation context %d", rcv.ContextID)
		}

		rsp := &types.Message{
			CommandField:              types.ResponseCommandFor(rcv.Command.CommandField),
			MessageIDBeingRespondedTo: rcv.Command.MessageID,
			AffectedSOPClassUID:       rcv.Command.AffectedSOPClassUID,
			AffectedSOPInstanceUID:    rcv.Command.AffectedSOPInstanceUID,
			CommandDataSetType:        types.NoDataSet,
		}

		switch rcv.Command.CommandField {
		case types.CEchoRQ:
			rsp.Status = types.StatusSuccess
		case types.CStoreRQ:
			if rcv.Command.AffectedSOPClassUID != pc.abstractSyntax {
				rsp.Status = types.StatusSOPClassNotSupported
				break
			}
			status, err := s.Handler.HandleStore(ctx, &StoreRequest{
				CallingAETitle:          assoc.callingAETitle,
				ContextID:               rcv.ContextID,
				SOPClassUID:             rcv.Command.AffectedSOPClassUID,
				SOPInstanceUID:          rcv.Command.AffectedSOPInstanceUID,
				TransferSyntaxUID:       pc.transferSyntax,
				MoveOriginatorAETitle:   rcv.Command.MoveOriginatorAETitle,
				MoveOriginatorMessageID: rcv.Command.MoveOriginatorMessageID,
				Data:                    rcv.Data,
			})
			if errors.Is(err, ErrAbort) {
				logger.Info("Aborting association on handler request",
					"sop_instance", rcv.Command.AffectedSOPInstanceUID)
				return pdu.WritePDU(conn, pdu.TypeAbort, pdu.Abort{Source: pdu.AbortSourceServiceUser}.Encode())
			}
			if err != nil {
				logger.Warn("Store handler failed", "error", err,
					"sop_instance", rcv.Command.AffectedSOPInstanceUID)
				rsp.ErrorComment = err.Error()
			}
			rsp.Status = status
		default:
			logger.Warn("Unsupported DIMSE command", "command_field", fmt.Sprintf("0x%04X", rcv.Command.CommandField))
			rsp.Status = types.StatusUnrecognizedOperation
		}

		commandData, err := dimse.EncodeCommand(rsp)
		if err != nil {
			return err
		}
		if err := dimse.SendDIMSEMessage(conn, rcv.ContextID, assoc.peerMaxPDU, commandData, nil); err != nil {
			return err
		}
	}
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
