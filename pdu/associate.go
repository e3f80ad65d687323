package pdu

import (
	"encoding/binary"
	"fmt"

	dicomerrors "github.com/caio-sobreiro/dicomsend/errors"
	"github.com/caio-sobreiro/dicomsend/types"
)

// fixedFieldsLength covers protocol version, called and calling AE titles
// and the reserved block of A-ASSOCIATE-RQ/AC.
const fixedFieldsLength = 68

const protocolVersion = 0x0001

// Presentation context results
const (
	ResultAcceptance                   byte = 0x00
	ResultUserRejection                byte = 0x01
	ResultNoReason                     byte = 0x02
	ResultAbstractSyntaxNotSupported   byte = 0x03
	ResultTransferSyntaxesNotSupported byte = 0x04
)

// ResultString names a presentation context result
func ResultString(result byte) string {
	switch result {
	case ResultAcceptance:
		return "acceptance"
	case ResultUserRejection:
		return "user-rejection"
	case ResultNoReason:
		return "no-reason"
	case ResultAbstractSyntaxNotSupported:
		return "abstract-syntax-not-supported"
	case ResultTransferSyntaxesNotSupported:
		return "transfer-syntaxes-not-supported"
	default:
		return fmt.Sprintf("result(0x%02x)", result)
	}
}

// PresentationContextRQ is one proposed presentation context
type PresentationContextRQ struct {
	ID               byte
	AbstractSyntax   string
	TransferSyntaxes []string
}

// PresentationContextAC is the acceptor's answer to one proposal
type PresentationContextAC struct {
	ID             byte
	Result         byte
	TransferSyntax string
}

// Accepted reports whether the context can carry messages
func (pc PresentationContextAC) Accepted() bool {
	return pc.Result == ResultAcceptance && pc.TransferSyntax != ""
}

// UserInformation holds the user information sub-items this module exchanges
type UserInformation struct {
	MaxPDULength              uint32
	ImplementationClassUID    string
	ImplementationVersionName string
}

func (u UserInformation) encode() []byte {
	var data []byte
	data = appendItem(data, ItemMaximumLength, binary.BigEndian.AppendUint32(nil, u.MaxPDULength))
	if u.ImplementationClassUID != "" {
		data = appendItem(data, ItemImplementationClassUID, []byte(u.ImplementationClassUID))
	}
	if u.ImplementationVersionName != "" {
		data = appendItem(data, ItemImplementationVersion, []byte(u.ImplementationVersionName))
	}
	return data
}

func parseUserInformation(data []byte) (UserInformation, error) {
	var info UserInformation
	items, err := splitItems(data)
	if err != nil {
		return info, fmt.Errorf("user information: %w", err)
	}
	for _, it := range items {
		switch it.Type {
		case ItemMaximumLength:
			if len(it.Value) == 4 {
				info.MaxPDULength = binary.BigEndian.Uint32(it.Value)
			}
		case ItemImplementationClassUID:
			info.ImplementationClassUID = normalizeUID(it.Value)
		case ItemImplementationVersion:
			info.ImplementationVersionName = normalizeAETitle(it.Value)
		}
	}
	return info, nil
}

// AssociateRQ is the body of an A-ASSOCIATE-RQ PDU
type AssociateRQ struct {
	CalledAETitle        string
	CallingAETitle       string
	ApplicationContext   string
	PresentationContexts []PresentationContextRQ
	UserInfo             UserInformation
}

// Encode returns the PDU body. An empty application context name defaults
// to the DICOM application context.
func (rq *AssociateRQ) Encode() []byte {
	data := encodeFixedFields(rq.CalledAETitle, rq.CallingAETitle)
	data = appendItem(data, ItemApplicationContext, []byte(applicationContext(rq.ApplicationContext)))

	for _, pc := range rq.PresentationContexts {
		var sub []byte
		sub = append(sub, pc.ID, 0x00, 0x00, 0x00)
		sub = appendItem(sub, ItemAbstractSyntax, []byte(pc.AbstractSyntax))
		for _, ts := range pc.TransferSyntaxes {
			sub = appendItem(sub, ItemTransferSyntax, []byte(ts))
		}
		data = appendItem(data, ItemPresentationContextRQ, sub)
	}

	return appendItem(data, ItemUserInformation, rq.UserInfo.encode())
}

// ParseAssociateRQ decodes an A-ASSOCIATE-RQ body
func ParseAssociateRQ(data []byte) (*AssociateRQ, error) {
	if len(data) < fixedFieldsLength {
		return nil, dicomerrors.NewPDUError(TypeAssociateRQ, "association request too short")
	}

	rq := &AssociateRQ{
		CalledAETitle:  normalizeAETitle(data[4:20]),
		CallingAETitle: normalizeAETitle(data[20:36]),
	}

	items, err := splitItems(data[fixedFieldsLength:])
	if err != nil {
		return nil, dicomerrors.NewPDUError(TypeAssociateRQ, err.Error())
	}

	for _, it := range items {
		switch it.Type {
		case ItemApplicationContext:
			rq.ApplicationContext = normalizeUID(it.Value)
		case ItemPresentationContextRQ:
			pc, err := parsePresentationContextRQ(it.Value)
			if err != nil {
				return nil, dicomerrors.NewPDUError(TypeAssociateRQ, err.Error())
			}
			rq.PresentationContexts = append(rq.PresentationContexts, pc)
		case ItemUserInformation:
			if rq.UserInfo, err = parseUserInformation(it.Value); err != nil {
				return nil, dicomerrors.NewPDUError(TypeAssociateRQ, err.Error())
			}
		}
	}
	return rq, nil
}

func parsePresentationContextRQ(data []byte) (PresentationContextRQ, error) {
	var pc PresentationContextRQ
	if len(data) < 4 {
		return pc, fmt.Errorf("presentation context too short: %d", len(data))
	}
	pc.ID = data[0]

	items, err := splitItems(data[4:])
	if err != nil {
		return pc, fmt.Errorf("presentation context %d: %w", pc.ID, err)
	}
	for _, it := range items {
		switch it.Type {
		case ItemAbstractSyntax:
			pc.AbstractSyntax = normalizeUID(it.Value)
		case ItemTransferSyntax:
			pc.TransferSyntaxes = append(pc.TransferSyntaxes, normalizeUID(it.Value))
		}
	}

	if pc.AbstractSyntax == "" {
		return pc, fmt.Errorf("presentation context %d missing abstract syntax", pc.ID)
	}
	return pc, nil
}

// AssociateAC is the body of an A-ASSOCIATE-AC PDU
type AssociateAC struct {
	CalledAETitle        string
	CallingAETitle       string
	ApplicationContext   string
	PresentationContexts []PresentationContextAC
	UserInfo             UserInformation
}

// Encode returns the PDU body. Rejected contexts are written without a
// transfer syntax sub-item.
func (ac *AssociateAC) Encode() []byte {
	data := encodeFixedFields(ac.CalledAETitle, ac.CallingAETitle)
	data = appendItem(data, ItemApplicationContext, []byte(applicationContext(ac.ApplicationContext)))

	for _, pc := range ac.PresentationContexts {
		sub := []byte{pc.ID, 0x00, pc.Result, 0x00}
		if pc.Result == ResultAcceptance && pc.TransferSyntax != "" {
			sub = appendItem(sub, ItemTransferSyntax, []byte(pc.TransferSyntax))
		}
		data = appendItem(data, ItemPresentationContextAC, sub)
	}

	return appendItem(data, ItemUserInformation, ac.UserInfo.encode())
}

// Context returns the answer for a presentation context ID
func (ac *AssociateAC) Context(id byte) (PresentationContextAC, bool) {
	for _, pc := range ac.PresentationContexts {
		if pc.ID == id {
			return pc, true
		}
	}
	return PresentationContextAC{}, false
}

// ParseAssociateAC decodes an A-ASSOCIATE-AC body
func ParseAssociateAC(data []byte) (*AssociateAC, error) {
	if len(data) < fixedFieldsLength {
		return nil, dicomerrors.NewPDUError(TypeAssociateAC, "association accept too short")
	}

	ac := &AssociateAC{
		CalledAETitle:  normalizeAETitle(data[4:20]),
		CallingAETitle: normalizeAETitle(data[20:36]),
	}

	items, err := splitItems(data[fixedFieldsLength:])
	if err != nil {
		return nil, dicomerrors.NewPDUError(TypeAssociateAC, err.Error())
	}

	for _, it := range items {
		switch it.Type {
		case ItemApplicationContext:
			ac.ApplicationContext = normalizeUID(it.Value)
		case ItemPresentationContextAC:
			if len(it.Value) < 4 {
				return nil, dicomerrors.NewPDUError(TypeAssociateAC, "presentation context item too short")
			}
			pc := PresentationContextAC{ID: it.Value[0], Result: it.Value[2]}
			sub, err := splitItems(it.Value[4:])
			if err != nil {
				return nil, dicomerrors.NewPDUError(TypeAssociateAC, err.Error())
			}
			for _, s := range sub {
				if s.Type == ItemTransferSyntax {
					pc.TransferSyntax = normalizeUID(s.Value)
				}
			}
			ac.PresentationContexts = append(ac.PresentationContexts, pc)
		case ItemUserInformation:
			if ac.UserInfo, err = parseUserInformation(it.Value); err != nil {
				return nil, dicomerrors.NewPDUError(TypeAssociateAC, err.Error())
			}
		}
	}
	return ac, nil
}

// AssociateRJ is the body of an A-ASSOCIATE-RJ PDU
type AssociateRJ struct {
	Result byte
	Source byte
	Reason byte
}

// Encode returns the A-ASSOCIATE-RJ body
func (rj AssociateRJ) Encode() []byte {
	return []byte{0x00, rj.Result, rj.Source, rj.Reason}
}

// ParseAssociateRJ decodes an A-ASSOCIATE-RJ body
func ParseAssociateRJ(data []byte) (AssociateRJ, error) {
	if len(data) < 4 {
		return AssociateRJ{}, dicomerrors.NewPDUError(TypeAssociateRJ, "association reject too short")
	}
	return AssociateRJ{Result: data[1], Source: data[2], Reason: data[3]}, nil
}

// Err converts the rejection into an AssociationError
func (rj AssociateRJ) Err() *dicomerrors.AssociationError {
	msg := "rejected-permanent"
	if rj.Result == 0x02 {
		msg = "rejected-transient"
	}
	return dicomerrors.NewAssociationError(
		dicomerrors.AssociationRejectSource(rj.Source),
		dicomerrors.AssociationRejectReason(rj.Reason),
		msg)
}

func encodeFixedFields(calledAE, callingAE string) []byte {
	fixed := make([]byte, fixedFieldsLength)
	binary.BigEndian.PutUint16(fixed[0:2], protocolVersion)
	copy(fixed[4:20], padAETitle(calledAE))
	copy(fixed[20:36], padAETitle(callingAE))
	return fixed
}

func applicationContext(name string) string {
	if name == "" {
		return types.ApplicationContextUID
	}
	return name
}
