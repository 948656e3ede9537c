package mm

import (
	"fmt"

	"github.com/rob-gra/go-dect/config"
	"github.com/rob-gra/go-dect/internal/dlog"
	"github.com/rob-gra/go-dect/lower"
	"github.com/rob-gra/go-dect/nwk"
	"github.com/rob-gra/go-dect/nwk/trans"
)

// IndicationKind enumerates the upper-layer events an Entity delivers;
// mirrors cc.IndicationKind's role one layer down.
type IndicationKind uint8

const (
	IndAccessRightsRequest IndicationKind = iota
	IndAccessRightsAccept
	IndAccessRightsReject
	IndLocateRequest
	IndLocateAccept
	IndLocateReject
	IndIdentityRequest
	IndTempIdentityAssign
	IndAuthRequest
	IndAuthReply
	IndCipherRequest
	IndCipherSuggest
	IndCipherReject
	IndInfoRequest
	IndInfoAccept
	IndInfoSuggest
	IndInfoReject
	IndIdentityAssignAck
	IndIdentityAssignRej
)

// Indication is delivered to a Listener for every inbound MM event.
type Indication struct {
	Kind IndicationKind
	Tr   *Transaction
	IEs  []nwk.ParsedIE
}

// Listener receives MM indications.
type Listener interface {
	MMIndication(Indication)
}

// Entity is the Mobility Management protocol entity: one per NWK
// handle, registering the full MM message descriptor table (including
// the supplemented cipher/info exchanges) with a trans.Dispatcher.
type Entity struct {
	config   *config.HandleConfig
	disp     *trans.Dispatcher
	table    *trans.Table
	timers   lower.TimerService
	listener Listener
	Log      *dlog.Logger

	txns map[*trans.Transaction]*Transaction
}

// NewEntity builds an MM Entity bound to disp.
func NewEntity(cfg *config.HandleConfig, disp *trans.Dispatcher, timers lower.TimerService, listener Listener, log *dlog.Logger) *Entity {
	e := &Entity{
		config:   cfg,
		disp:     disp,
		timers:   timers,
		listener: listener,
		Log:      log,
		txns:     make(map[*trans.Transaction]*Transaction),
	}
	e.table = disp.Register(e, cfg.MaxTransactionsMM, nwk.MMDescriptors())
	return e
}

var _ trans.Protocol = (*Entity)(nil)

func (e *Entity) Discriminator() trans.ProtocolDiscriminator { return trans.PDMobility }

func (e *Entity) Open(tr *trans.Transaction, msgTypeOctet uint8, ies []nwk.ParsedIE) error {
	kind, ind, ok := openKind(msgTypeOctet)
	if !ok {
		return fmt.Errorf("mm: message type 0x%02x cannot open a transaction", msgTypeOctet)
	}
	mt := &Transaction{tr: tr, kind: kind, entity: e}
	e.txns[tr] = mt
	e.notify(Indication{Kind: ind, Tr: mt, IEs: ies})
	return nil
}

func openKind(msgTypeOctet uint8) (exchangeKind, IndicationKind, bool) {
	switch msgTypeOctet {
	case nwk.MsgMMAccessRightsRequest:
		return exchangeAccessRights, IndAccessRightsRequest, true
	case nwk.MsgMMLocateRequest:
		return exchangeLocate, IndLocateRequest, true
	case nwk.MsgMMIdentityRequest:
		return exchangeIdentity, IndIdentityRequest, true
	case nwk.MsgMMCipherRequest:
		return exchangeCipher, IndCipherRequest, true
	case nwk.MsgMMInfoRequest:
		return exchangeInfo, IndInfoRequest, true
	case nwk.MsgMMTempIdentityAssign:
		return exchangeTempIdentityAssign, IndTempIdentityAssign, true
	default:
		return 0, 0, false
	}
}

func (e *Entity) Rcv(tr *trans.Transaction, msgTypeOctet uint8, ies []nwk.ParsedIE) error {
	mt, ok := e.txns[tr]
	if !ok {
		return fmt.Errorf("mm: message 0x%02x for unknown transaction", msgTypeOctet)
	}

	switch msgTypeOctet {
	case nwk.MsgMMAccessRightsAccept:
		e.notify(Indication{Kind: IndAccessRightsAccept, Tr: mt, IEs: ies})
		e.release(mt)
	case nwk.MsgMMAccessRightsReject:
		e.notify(Indication{Kind: IndAccessRightsReject, Tr: mt, IEs: ies})
		e.release(mt)
	case nwk.MsgMMLocateAccept:
		e.notify(Indication{Kind: IndLocateAccept, Tr: mt, IEs: ies})
		e.release(mt)
	case nwk.MsgMMLocateReject:
		e.notify(Indication{Kind: IndLocateReject, Tr: mt, IEs: ies})
		e.release(mt)
	case nwk.MsgMMTempIdentityAssign:
		e.notify(Indication{Kind: IndTempIdentityAssign, Tr: mt, IEs: ies})
	case nwk.MsgMMTempIdentityAssignAck:
		e.notify(Indication{Kind: IndIdentityAssignAck, Tr: mt, IEs: ies})
		e.release(mt)
	case nwk.MsgMMTempIdentityAssignRej:
		e.notify(Indication{Kind: IndIdentityAssignRej, Tr: mt, IEs: ies})
		e.release(mt)
	case nwk.MsgMMAuthRequest:
		e.notify(Indication{Kind: IndAuthRequest, Tr: mt, IEs: ies})
	case nwk.MsgMMAuthReply:
		e.notify(Indication{Kind: IndAuthReply, Tr: mt, IEs: ies})
		e.release(mt)
	case nwk.MsgMMCipherSuggest:
		e.notify(Indication{Kind: IndCipherSuggest, Tr: mt, IEs: ies})
	case nwk.MsgMMCipherReject:
		e.notify(Indication{Kind: IndCipherReject, Tr: mt, IEs: ies})
		e.release(mt)
	case nwk.MsgMMInfoAccept:
		e.notify(Indication{Kind: IndInfoAccept, Tr: mt, IEs: ies})
		e.release(mt)
	case nwk.MsgMMInfoSuggest:
		e.notify(Indication{Kind: IndInfoSuggest, Tr: mt, IEs: ies})
	case nwk.MsgMMInfoReject:
		e.notify(Indication{Kind: IndInfoReject, Tr: mt, IEs: ies})
		e.release(mt)
	default:
		return fmt.Errorf("mm: unexpected message type 0x%02x", msgTypeOctet)
	}
	return nil
}

func (e *Entity) Shutdown(tr *trans.Transaction, reason error) {
	delete(e.txns, tr)
}

func (e *Entity) notify(ind Indication) {
	if e.listener != nil {
		e.listener.MMIndication(ind)
	}
}

func (e *Entity) release(mt *Transaction) {
	delete(e.txns, mt.tr)
	e.table.Release(mt.tr.TI)
}

// TempIdentityAssignResponse answers an inbound MM-TEMPORARY-IDENTITY-
// ASSIGN (delivered as IndTempIdentityAssign): the application decides
// whether to accept the assigned identity, rather than the entity
// acking it unconditionally on receipt.
func (e *Entity) TempIdentityAssignResponse(mt *Transaction, accept bool) error {
	msgTypeOctet := nwk.MsgMMTempIdentityAssignRej
	var values map[nwk.IEType][]nwk.IE
	if accept {
		msgTypeOctet = nwk.MsgMMTempIdentityAssignAck
	} else {
		values = map[nwk.IEType][]nwk.IE{
			nwk.IEReleaseReason: {nwk.ReleaseReason{Reason: nwk.ReleaseNormal}},
		}
	}
	err := e.disp.SendMessage(trans.PDMobility, mt.tr.TI, msgTypeOctet, values)
	e.release(mt)
	return err
}

// AccessRightsRequest originates MM-ACCESS-RIGHTS-REQUEST, grounded on
// dect_mm_access_rights_req.
func (e *Entity) AccessRightsRequest(identity nwk.PortableIdentity) (*Transaction, error) {
	return e.open(exchangeAccessRights, nwk.MsgMMAccessRightsRequest, map[nwk.IEType][]nwk.IE{
		nwk.IEPortableIdentity: {identity},
	})
}

// LocateRequest originates MM-LOCATE-REQUEST, grounded on
// dect_mm_locate_req.
func (e *Entity) LocateRequest(identity nwk.PortableIdentity) (*Transaction, error) {
	return e.open(exchangeLocate, nwk.MsgMMLocateRequest, map[nwk.IEType][]nwk.IE{
		nwk.IEPortableIdentity: {identity},
	})
}

// CipherRequest originates MM-CIPHER-REQUEST, muxing only: no cipher
// algorithm is run, this only carries the IE across the link.
func (e *Entity) CipherRequest(info nwk.CipherInfo) (*Transaction, error) {
	return e.open(exchangeCipher, nwk.MsgMMCipherRequest, map[nwk.IEType][]nwk.IE{
		nwk.IECipherInfo: {info},
	})
}

// InfoRequest originates MM-INFO-REQUEST.
func (e *Entity) InfoRequest() (*Transaction, error) {
	return e.open(exchangeInfo, nwk.MsgMMInfoRequest, nil)
}

// AccessRightsResponse answers an inbound MM-ACCESS-RIGHTS-REQUEST
// (delivered as IndAccessRightsRequest): the FP application decides
// whether to grant access, optionally assigning a TPUI on accept,
// grounded on dect_mm_access_rights_res.
func (e *Entity) AccessRightsResponse(mt *Transaction, accept bool, reason uint8, assigned *nwk.NWKAssignedIdentity) error {
	if !accept {
		err := e.disp.SendMessage(trans.PDMobility, mt.tr.TI, nwk.MsgMMAccessRightsReject, map[nwk.IEType][]nwk.IE{
			nwk.IEReleaseReason: {nwk.ReleaseReason{Reason: reason}},
		})
		e.release(mt)
		return err
	}
	values := map[nwk.IEType][]nwk.IE{}
	if assigned != nil {
		values[nwk.IENWKAssignedIdentity] = []nwk.IE{*assigned}
	}
	err := e.disp.SendMessage(trans.PDMobility, mt.tr.TI, nwk.MsgMMAccessRightsAccept, values)
	e.release(mt)
	return err
}

// LocateResponse answers an inbound MM-LOCATE-REQUEST (delivered as
// IndLocateRequest) via the single primitive spec.md names: it switches
// on accept, mirroring AccessRightsResponse's shape; reason is sent only
// on the reject path and a non-zero reason does not by itself select it.
func (e *Entity) LocateResponse(mt *Transaction, accept bool, reason uint8, assigned *nwk.NWKAssignedIdentity) error {
	if !accept {
		err := e.disp.SendMessage(trans.PDMobility, mt.tr.TI, nwk.MsgMMLocateReject, map[nwk.IEType][]nwk.IE{
			nwk.IEReleaseReason: {nwk.ReleaseReason{Reason: reason}},
		})
		e.release(mt)
		return err
	}
	values := map[nwk.IEType][]nwk.IE{}
	if assigned != nil {
		values[nwk.IENWKAssignedIdentity] = []nwk.IE{*assigned}
	}
	err := e.disp.SendMessage(trans.PDMobility, mt.tr.TI, nwk.MsgMMLocateAccept, values)
	e.release(mt)
	return err
}

// TempIdentityAssignRequest is FP-initiated: unlike every other MM
// exchange, the FP originates MM-TEMPORARY-IDENTITY-ASSIGN on its own
// initiative rather than in reply to a PP request, and the PP's
// ACK/REJECT arrives via Rcv as IndIdentityAssignAck/IndIdentityAssignRej.
func (e *Entity) TempIdentityAssignRequest(assigned nwk.NWKAssignedIdentity) (*Transaction, error) {
	return e.open(exchangeTempIdentityAssign, nwk.MsgMMTempIdentityAssign, map[nwk.IEType][]nwk.IE{
		nwk.IENWKAssignedIdentity: {assigned},
	})
}

func (e *Entity) open(kind exchangeKind, msgTypeOctet uint8, values map[nwk.IEType][]nwk.IE) (*Transaction, error) {
	tr, err := e.table.Allocate(e.config.Mode == config.ModePP)
	if err != nil {
		return nil, err
	}
	mt := &Transaction{tr: tr, kind: kind, entity: e}
	e.txns[tr] = mt
	if err := e.disp.SendMessage(trans.PDMobility, tr.TI, msgTypeOctet, values); err != nil {
		e.release(mt)
		return nil, err
	}
	return mt, nil
}
