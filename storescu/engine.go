package storescu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/caio-sobreiro/dicomsend/client"
	"github.com/caio-sobreiro/dicomsend/dicom"
	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/metrics"
	"github.com/caio-sobreiro/dicomsend/types"
)

// ErrStopRequested is returned when an Observer asks the job to stop
var ErrStopRequested = errors.New("storescu: stop requested")

// State is the lifecycle position of an Engine
type State int

const (
	StateIdle State = iota
	StateNegotiatingTransport
	StateNegotiatingChannels
	StateSending
	StateClosed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNegotiatingTransport:
		return "negotiating-transport"
	case StateNegotiatingChannels:
		return "negotiating-channels"
	case StateSending:
		return "sending"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Association is the network side of a session
type Association interface {
	Proposer
	Open(ctx context.Context, address string) error
	Negotiate(ctx context.Context) (int, error)
	AcceptedTransferSyntax(presContextID byte) (string, bool)
	SendCStore(ctx context.Context, presContextID byte, req *client.CStoreRequest) (*client.CStoreResponse, error)
	Release(ctx context.Context) error
	Abort() error
}

var _ Association = (*client.Association)(nil)

// Config holds transfer policies
type Config struct {
	// Address of the storage SCP, host:port
	Address string

	Decompression         DecompressionMode
	AllowIllegalProposals bool
	// HaltOnUnsuccessfulStore stops sending at the first object whose
	// outcome is neither success nor warning.
	HaltOnUnsuccessfulStore bool
	// SingleSession runs at most one association per job, leaving objects
	// that did not fit for a later call.
	SingleSession bool

	Priority                uint16
	MoveOriginatorAETitle   string
	MoveOriginatorMessageID uint16

	Codecs   Codecs          // default: NewCodecRegistry()
	Registry *types.Registry // default: types.DefaultRegistry()
	Logger   *slog.Logger
}

// SessionResult describes one association
type SessionResult struct {
	Session  int
	Channels int
	Accepted int
	// Sent counts the C-STOREs the peer answered
	Sent      int
	Remaining int
	// Done is set when there was nothing left to negotiate
	Done bool
}

// Engine drives associations for a transfer list. An Engine is not safe
// for concurrent use; run one Engine per peer.
type Engine struct {
	assoc    Association
	config   Config
	planner  *Planner
	state    State
	sessions int
	channels int
	logger   *slog.Logger
}

// NewEngine creates an engine sending over assoc
func NewEngine(assoc Association, config Config) *Engine {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Codecs == nil {
		config.Codecs = NewCodecRegistry()
	}
	if config.Registry == nil {
		config.Registry = types.DefaultRegistry()
	}
	return &Engine{
		assoc:  assoc,
		config: config,
		planner: &Planner{
			Decompression:           config.Decompression,
			AllowIllegalProposals:   config.AllowIllegalProposals,
			HaltOnUnsuccessfulStore: config.HaltOnUnsuccessfulStore,
			Codecs:                  config.Codecs,
			Registry:                config.Registry,
			Logger:                  config.Logger,
		},
		logger: config.Logger,
	}
}

// State returns the current lifecycle state
func (e *Engine) State() State {
	return e.state
}

// SessionCount returns how many associations were negotiated, successfully or not
func (e *Engine) SessionCount() int {
	return e.sessions
}

// ChannelCount returns how many presentation contexts were proposed in total
func (e *Engine) ChannelCount() int {
	return e.channels
}

// RunJob runs sessions until every entry is handled, a session fails or,
// in single session mode, after the first one.
func (e *Engine) RunJob(ctx context.Context, list *TransferList, obs Observer) error {
	for {
		result, err := e.RunOneSession(ctx, list, obs)
		metrics.PendingObjects.Set(float64(list.CountPending()))
		if err != nil {
			return err
		}
		if result.Done || e.config.SingleSession {
			return nil
		}
	}
}

// RunOneSession plans, negotiates and sends one association's worth of
// entries. Done is set when nothing was left to plan.
func (e *Engine) RunOneSession(ctx context.Context, list *TransferList, obs Observer) (SessionResult, error) {
	var result SessionResult

	outcome, err := e.Plan(list)
	if err != nil {
		return result, err
	}
	if outcome.NothingToPlan() {
		result.Done = true
		return result, nil
	}
	result.Channels = outcome.Channels

	if err := e.Open(ctx); err != nil {
		metrics.SessionsTotal.WithLabelValues(metrics.SessionFailed).Inc()
		return result, err
	}

	result.Accepted, err = e.Negotiate(ctx, list)
	result.Session = e.sessions
	if errors.Is(err, dicomerrors.ErrNothingNegotiated) {
		metrics.SessionsTotal.WithLabelValues(metrics.SessionNothingNegotiated).Inc()
		if closeErr := e.Close(ctx); closeErr != nil {
			return result, closeErr
		}
		result.Remaining = list.CountPending()
		if result.Remaining > 0 {
			return result, nil
		}
		return result, err
	}
	if err != nil {
		metrics.SessionsTotal.WithLabelValues(metrics.SessionFailed).Inc()
		return result, err
	}

	result.Sent, err = e.Send(ctx, list, obs)
	if dicomerrors.IsFatal(err) {
		metrics.SessionsTotal.WithLabelValues(metrics.SessionFailed).Inc()
		result.Remaining = list.CountPending()
		return result, err
	}

	if closeErr := e.Close(ctx); closeErr != nil {
		metrics.SessionsTotal.WithLabelValues(metrics.SessionFailed).Inc()
		return result, closeErr
	}
	result.Remaining = list.CountPending()

	switch {
	case err == nil:
		metrics.SessionsTotal.WithLabelValues(metrics.SessionCompleted).Inc()
	case errors.Is(err, ErrStopRequested), errors.Is(err, dicomerrors.ErrOperationCanceled):
		metrics.SessionsTotal.WithLabelValues(metrics.SessionStopped).Inc()
	default:
		metrics.SessionsTotal.WithLabelValues(metrics.SessionHalted).Inc()
	}

	e.logger.Info("Session finished",
		"session", result.Session,
		"accepted", result.Accepted,
		"sent", result.Sent,
		"remaining", result.Remaining)
	return result, err
}

// Plan proposes presentation contexts for the pending entries
func (e *Engine) Plan(list *TransferList) (PlanOutcome, error) {
	e.state = StateIdle
	outcome, err := e.planner.Plan(list, e.assoc)
	e.channels += outcome.Channels
	metrics.PresentationContextsProposed.Add(float64(outcome.Channels))
	return outcome, err
}

// Open connects to the configured address
func (e *Engine) Open(ctx context.Context) error {
	e.state = StateNegotiatingTransport
	if err := e.assoc.Open(ctx, e.config.Address); err != nil {
		e.state = StateFailed
		return err
	}
	return nil
}

// Negotiate runs the association negotiation. When the peer accepts no
// presentation context, the entries planned for this round are marked as
// not sent and an error wrapping ErrNothingNegotiated is returned.
func (e *Engine) Negotiate(ctx context.Context, list *TransferList) (int, error) {
	e.state = StateNegotiatingChannels
	accepted, err := e.assoc.Negotiate(ctx)
	e.sessions++
	if err != nil {
		e.state = StateFailed
		return 0, err
	}
	if accepted > 0 {
		return accepted, nil
	}

	marked := 0
	for i := list.cursor; i < len(list.entries); i++ {
		entry := list.entries[i]
		if entry.Sent {
			continue
		}
		if entry.ChannelID == 0 {
			break
		}
		entry.markNotSent(types.StatusNoPresentationContext)
		recordOutcome(entry)
		marked++
	}
	list.advance()

	e.logger.Warn("Peer accepted no presentation context", "session", e.sessions, "marked", marked)
	return 0, fmt.Errorf("session %d: %w", e.sessions, dicomerrors.ErrNothingNegotiated)
}

// Send transmits every pending entry planned for the negotiated contexts,
// in list order. Cancellation and Observer.ShouldStop are honoured between
// objects only.
func (e *Engine) Send(ctx context.Context, list *TransferList, obs Observer) (int, error) {
	if obs == nil {
		obs = ObserverFuncs{}
	}
	e.state = StateSending
	defer list.advance()

	// a started C-STORE always runs to completion
	sendCtx := context.WithoutCancel(ctx)

	sent := 0
	for i := list.cursor; i < len(list.entries); i++ {
		entry := list.entries[i]
		if entry.Sent || entry.ChannelID == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sent, fmt.Errorf("%w: %w", dicomerrors.ErrOperationCanceled, err)
		}

		stored, err := e.sendEntry(sendCtx, entry, obs)
		if err != nil {
			e.state = StateFailed
			_ = e.assoc.Abort()
			return sent, err
		}
		if stored {
			sent++
		}
		recordOutcome(entry)

		if e.config.HaltOnUnsuccessfulStore && !types.IsAcceptableStoreStatus(entry.Status) {
			e.logger.Warn("Halting after unsuccessful store",
				"sop_instance", entry.SOPInstanceUID,
				"status", fmt.Sprintf("0x%04X", entry.Status))
			return sent, dicomerrors.NewDIMSEError("C-STORE", entry.Status, types.StatusString(entry.Status))
		}
		if obs.ShouldStop() {
			return sent, ErrStopRequested
		}
	}
	return sent, nil
}

// sendEntry sends one object and reports whether the peer answered the
// C-STORE. Only transport failures are returned; every other outcome is
// recorded on the entry.
func (e *Engine) sendEntry(ctx context.Context, entry *TransferEntry, obs Observer) (bool, error) {
	entry.Session = e.sessions

	networkSyntax, ok := e.assoc.AcceptedTransferSyntax(entry.ChannelID)
	if !ok {
		entry.markNotSent(types.StatusNoPresentationContext)
		e.logger.Debug("Presentation context rejected",
			"sop_instance", entry.SOPInstanceUID,
			"context_id", entry.ChannelID)
		return false, nil
	}

	data, status, err := e.load(entry, networkSyntax)
	if err != nil {
		entry.markNotSent(status)
		e.logger.Warn("Cannot send object",
			"source", entry.Source.Name(),
			"sop_instance", entry.SOPInstanceUID,
			"error", err)
		return false, nil
	}
	entry.Size = int64(len(data))

	obs.BeforeSend(entry)
	rsp, err := e.assoc.SendCStore(ctx, entry.ChannelID, &client.CStoreRequest{
		SOPClassUID:             entry.SOPClassUID,
		SOPInstanceUID:          entry.SOPInstanceUID,
		Data:                    data,
		Priority:                e.config.Priority,
		MoveOriginatorAETitle:   e.config.MoveOriginatorAETitle,
		MoveOriginatorMessageID: e.config.MoveOriginatorMessageID,
	})
	if dicomerrors.IsFatal(err) {
		return false, err
	}
	if err != nil {
		entry.markNotSent(types.StatusLocalError)
		e.logger.Warn("C-STORE refused locally", "sop_instance", entry.SOPInstanceUID, "error", err)
		obs.AfterSend(entry)
		return false, nil
	}

	entry.Sent = true
	entry.Status = rsp.Status
	entry.NetworkTransferSyntax = networkSyntax
	if ms, ok := entry.memorySource(); ok {
		ms.afterSend()
	}
	metrics.BytesSentTotal.Add(float64(entry.Size))

	e.logger.Debug("Stored object",
		"sop_instance", entry.SOPInstanceUID,
		"context_id", entry.ChannelID,
		"transfer_syntax", networkSyntax,
		"status", fmt.Sprintf("0x%04X", rsp.Status))
	obs.AfterSend(entry)
	return true, nil
}

// load returns the entry's data set encoded in networkSyntax, or the
// status to record when that is not possible.
func (e *Engine) load(entry *TransferEntry, networkSyntax string) ([]byte, uint16, error) {
	var (
		data []byte
		from string
	)

	switch src := entry.Source.(type) {
	case *FileSource:
		obj, err := dicom.ReadObjectFile(src.Path, src.ReadMode)
		if err != nil {
			return nil, types.StatusLocalError, err
		}
		data, from = obj.Data, obj.TransferSyntaxUID
	case *MemorySource:
		ds := src.Dataset()
		if ds == nil {
			return nil, types.StatusInvalidDatasetReference, errors.New("data set has been released")
		}
		// a native data set is encoded straight into the accepted syntax;
		// compressed ones go through the codec from their own syntax
		from = entry.TransferSyntaxUID
		if entry.Uncompressed && types.IsUncompressed(networkSyntax) {
			from = networkSyntax
		}
		var err error
		if data, err = ds.Encode(from); err != nil {
			return nil, types.StatusLocalError, err
		}
	default:
		return nil, types.StatusInvalidDatasetReference, fmt.Errorf("entry has no source")
	}

	data, err := e.config.Codecs.Transcode(data, from, networkSyntax)
	if err != nil {
		return nil, types.StatusLocalError, err
	}
	return data, types.StatusSuccess, nil
}

// Close releases the association
func (e *Engine) Close(ctx context.Context) error {
	if err := e.assoc.Release(context.WithoutCancel(ctx)); err != nil {
		e.state = StateFailed
		return err
	}
	e.state = StateClosed
	return nil
}

func recordOutcome(entry *TransferEntry) {
	metrics.ObjectsTotal.WithLabelValues(types.ClassifyStatus(entry.Status).String()).Inc()
}
