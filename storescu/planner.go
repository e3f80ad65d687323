package storescu

import (
	"errors"
	"fmt"
	"log/slog"

	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/types"
)

// MaxPresentationContexts is the number of odd context IDs in 1..255
const MaxPresentationContexts = 128

// DecompressionMode limits which compressed objects may be offered with
// native fallback syntaxes.
type DecompressionMode int

const (
	// DecompressNever never offers native fallbacks for compressed objects
	DecompressNever DecompressionMode = iota
	// DecompressLosslessOnly offers fallbacks for lossless compression only
	DecompressLosslessOnly
	// DecompressLossyAndLossless offers fallbacks for any compression
	DecompressLossyAndLossless
)

func (m DecompressionMode) String() string {
	switch m {
	case DecompressNever:
		return "never"
	case DecompressLosslessOnly:
		return "lossless"
	case DecompressLossyAndLossless:
		return "lossy"
	default:
		return fmt.Sprintf("DecompressionMode(%d)", int(m))
	}
}

// ParseDecompressionMode maps a configuration string to a DecompressionMode
func ParseDecompressionMode(s string) (DecompressionMode, error) {
	switch s {
	case "never", "none":
		return DecompressNever, nil
	case "", "lossless":
		return DecompressLosslessOnly, nil
	case "lossy", "all":
		return DecompressLossyAndLossless, nil
	}
	return DecompressNever, fmt.Errorf("unknown decompression mode %q", s)
}

// Proposer collects presentation contexts for the next negotiation
type Proposer interface {
	ClearProposals()
	ProposeContext(abstractSyntax string, transferSyntaxes []string) (byte, error)
}

// PlanOutcome counts what one planning pass produced
type PlanOutcome struct {
	// Channels is the number of presentation contexts proposed
	Channels int
	// Planned is the number of entries assigned to one of them
	Planned int
}

// NothingToPlan reports whether no presentation context was proposed
func (o PlanOutcome) NothingToPlan() bool {
	return o.Channels == 0
}

// Planner assigns pending entries to presentation contexts. Entries of the
// same SOP class share a context when both are natively encoded or use the
// identical transfer syntax.
type Planner struct {
	Decompression         DecompressionMode
	AllowIllegalProposals bool
	// HaltOnUnsuccessfulStore makes an entry that cannot be proposed fail
	// the whole pass instead of being marked as not sent.
	HaltOnUnsuccessfulStore bool
	Codecs                  Codecs
	Registry                *types.Registry
	Logger                  *slog.Logger
}

type channelKey struct {
	abstractSyntax string
	encoding       string
}

func keyFor(entry *TransferEntry) channelKey {
	if entry.Uncompressed {
		return channelKey{entry.SOPClassUID, "native"}
	}
	return channelKey{entry.SOPClassUID, entry.TransferSyntaxUID}
}

// Plan walks the pending entries from the list cursor and proposes the
// presentation contexts they need. The walk stops without error once the
// context budget is spent; the rest of the list waits for another session.
func (p *Planner) Plan(list *TransferList, proposer Proposer) (PlanOutcome, error) {
	logger := p.logger()
	proposer.ClearProposals()

	var outcome PlanOutcome
	channels := make(map[channelKey]byte)

	i := list.cursor
	for ; i < len(list.entries); i++ {
		entry := list.entries[i]
		if entry.Sent {
			continue
		}
		entry.ChannelID = 0

		if outcome.Channels == MaxPresentationContexts {
			logger.Debug("Presentation context limit reached, deferring remaining objects",
				"pending", len(list.entries)-i)
			break
		}
		key := keyFor(entry)
		if id, ok := channels[key]; ok {
			entry.ChannelID = id
			outcome.Planned++
			continue
		}

		syntaxes, err := p.proposal(entry)
		if err != nil {
			var encErr *dicomerrors.UnsupportedEncodingError
			if p.HaltOnUnsuccessfulStore || !errors.As(err, &encErr) || p.registry().Category(entry.TransferSyntaxUID) == types.CategoryDeflated {
				return outcome, err
			}
			logger.Warn("No presentation context can carry object, skipping",
				"sop_instance", entry.SOPInstanceUID,
				"error", err)
			entry.markNotSent(types.StatusNoPresentationContext)
			recordOutcome(entry)
			continue
		}

		id, err := proposer.ProposeContext(entry.SOPClassUID, syntaxes)
		if errors.Is(err, dicomerrors.ErrTooManyContexts) {
			break
		}
		if err != nil {
			return outcome, err
		}

		channels[key] = id
		entry.ChannelID = id
		outcome.Channels++
		outcome.Planned++
		logger.Debug("Proposed presentation context",
			"context_id", id,
			"sop_class", entry.SOPClassUID,
			"transfer_syntaxes", syntaxes)
	}

	// deferred entries must not carry a context ID from an earlier session
	for ; i < len(list.entries); i++ {
		if entry := list.entries[i]; !entry.Sent {
			entry.ChannelID = 0
		}
	}
	return outcome, nil
}

// proposal returns the transfer syntaxes to offer for entry
func (p *Planner) proposal(entry *TransferEntry) ([]string, error) {
	ts := entry.TransferSyntaxUID
	category := p.registry().Category(ts)

	switch category {
	case types.CategoryUncompressed:
		return types.UncompressedTransferSyntaxes(), nil
	case types.CategoryUnknown:
		p.logger().Warn("Proposing unknown transfer syntax as is",
			"sop_instance", entry.SOPInstanceUID,
			"transfer_syntax", ts)
		return []string{ts}, nil
	case types.CategoryDeflated:
		return nil, dicomerrors.NewUnsupportedEncodingError(ts, entry.SOPInstanceUID,
			"stream compression cannot be negotiated")
	}

	syntaxes := []string{ts}
	allowed := p.Decompression == DecompressLossyAndLossless ||
		(p.Decompression == DecompressLosslessOnly && category == types.CategoryLossless)
	if allowed && p.Codecs != nil && canDecompress(p.Codecs, ts) {
		return append(syntaxes, types.UncompressedTransferSyntaxes()...), nil
	}

	if !p.AllowIllegalProposals {
		reason := "decompression disabled for " + category.String() + " compression"
		if allowed {
			reason = "no codec can decompress it"
		}
		return nil, dicomerrors.NewUnsupportedEncodingError(ts, entry.SOPInstanceUID, reason)
	}
	p.logger().Debug("Proposing compressed transfer syntax without native fallback",
		"sop_instance", entry.SOPInstanceUID,
		"transfer_syntax", ts)
	return syntaxes, nil
}

func (p *Planner) registry() *types.Registry {
	if p.Registry != nil {
		return p.Registry
	}
	return types.DefaultRegistry()
}

func (p *Planner) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
