package pdu

import (
	"log/slog"

	"github.com/caio-sobreiro/dicomsend/types"
)

// Acceptor answers association requests the way a storage SCP would. It is
// used to stand in for remote peers.
type Acceptor struct {
	// AbstractSyntaxes lists accepted SOP classes. When empty, every storage
	// SOP class and the verification SOP class are accepted.
	AbstractSyntaxes []string
	// TransferSyntaxes lists accepted transfer syntaxes. The first proposed
	// syntax found here is selected.
	TransferSyntaxes []string
	MaxPDULength     uint32
	Logger           *slog.Logger
}

// NewAcceptor returns an Acceptor for storage SOP classes in the
// uncompressed transfer syntaxes.
func NewAcceptor() *Acceptor {
	return &Acceptor{
		TransferSyntaxes: types.UncompressedTransferSyntaxes(),
		MaxPDULength:     16384,
	}
}

func (a *Acceptor) supportsAbstractSyntax(uid string) bool {
	if len(a.AbstractSyntaxes) == 0 {
		return uid == types.VerificationSOPClass || types.IsStorageSOPClass(uid)
	}
	for _, s := range a.AbstractSyntaxes {
		if s == uid {
			return true
		}
	}
	return false
}

func (a *Acceptor) supportsTransferSyntax(uid string) bool {
	for _, s := range a.TransferSyntaxes {
		if s == uid {
			return true
		}
	}
	return false
}

// Negotiate builds the A-ASSOCIATE-AC for rq, answering every proposed
// presentation context.
func (a *Acceptor) Negotiate(rq *AssociateRQ) *AssociateAC {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ac := &AssociateAC{
		CalledAETitle:  rq.CalledAETitle,
		CallingAETitle: rq.CallingAETitle,
		UserInfo: UserInformation{
			MaxPDULength:              a.MaxPDULength,
			ImplementationClassUID:    "1.2.826.0.1.3680043.10.1247.1",
			ImplementationVersionName: "DICOMSEND_1.0",
		},
	}

	accepted := 0
	for _, pc := range rq.PresentationContexts {
		answer := PresentationContextAC{ID: pc.ID, Result: ResultAbstractSyntaxNotSupported}
		if a.supportsAbstractSyntax(pc.AbstractSyntax) {
			answer.Result = ResultTransferSyntaxesNotSupported
			for _, ts := range pc.TransferSyntaxes {
				if a.supportsTransferSyntax(ts) {
					answer.Result = ResultAcceptance
					answer.TransferSyntax = ts
					accepted++
					break
				}
			}
		}

		logger.Debug("Presentation context negotiation result",
			"context_id", pc.ID,
			"abstract_syntax", pc.AbstractSyntax,
			"selected_transfer_syntax", answer.TransferSyntax,
			"result", ResultString(answer.Result))
		ac.PresentationContexts = append(ac.PresentationContexts, answer)
	}

	logger.Debug("Negotiated presentation contexts",
		"proposed", len(rq.PresentationContexts),
		"accepted", accepted)
	return ac
}
