package cc

import (
	"fmt"

	"github.com/rob-gra/go-dect/lower"
)

// uplane.go connects and releases the U-plane (LU1-SAP) bearer carrying
// a call's audio once CC-CONNECT has been exchanged, grounded on
// dect_call_connect_uplane/dect_dl_u_data_req/dect_dl_u_data_ind. The
// bearer socket is registered with the core's EventLoop like every other
// fd the core owns, rather than left for the application to poll: the
// audio codec itself stays out of scope.

// uplaneReadBuf is the per-read chunk size for the bearer socket; DECT
// B-field frames are small, so one fixed-size buffer per callback is
// enough without per-call allocation tuning.
const uplaneReadBuf = 512

// UPlane is the bearer socket bound to an active call, once ConnectUPlane
// has succeeded.
type UPlane struct {
	sock lower.Socket
	loop lower.EventLoop
	call *Call
}

// ConnectUPlane opens the U-plane bearer for call once it has reached
// StateActive, addressing it via addr (opaque lower-layer bearer
// endpoint information carried out of band from the MAC/DLC layers,
// which are themselves out of scope), and registers it with loop so
// inbound bytes are delivered as IndDlUData without the application
// polling for them.
func (c *Call) ConnectUPlane(factory lower.SocketFactory, addr lower.Addr, loop lower.EventLoop) (*UPlane, error) {
	if c.state != StateActive {
		return nil, fmt.Errorf("cc: cannot connect U-plane in state %s", c.state)
	}
	sock, err := factory.NewSocket(lower.FamilyDECTLU)
	if err != nil {
		return nil, err
	}
	if err := sock.Connect(addr); err != nil {
		return nil, err
	}
	u := &UPlane{sock: sock, loop: loop, call: c}
	if loop != nil {
		if err := loop.RegisterFD(sock, lower.FDEventRead, u.onReadable); err != nil {
			_ = sock.Close()
			return nil, err
		}
	}
	c.uplane = u
	return u, nil
}

// onReadable is the EventLoop callback fired when the bearer socket has
// data waiting; it forwards every read as one IndDlUData indication.
func (u *UPlane) onReadable(_ lower.FD, _ lower.FDEvent) {
	buf := make([]byte, uplaneReadBuf)
	n, err := u.sock.Recv(buf)
	if err != nil {
		if u.call.entity.Log != nil {
			u.call.entity.Log.Warn("cc: U-plane recv: %v", err)
		}
		return
	}
	u.call.entity.notify(Indication{Kind: IndDlUData, Call: u.call, Data: buf[:n]})
}

// DlUDataReq writes one frame of audio payload to the bearer. It is
// best-effort: a short or failed send is logged, never escalated to a
// call release, mirroring dect_dl_u_data_req's fire-and-forget framing.
func (c *Call) DlUDataReq(b []byte) error {
	if c.uplane == nil {
		return fmt.Errorf("cc: no U-plane bearer connected")
	}
	n, err := c.uplane.sock.Send(b)
	if (err != nil || n < len(b)) && c.entity.Log != nil {
		c.entity.Log.Warn("cc: dl_u_data_req short/failed send: %d/%d bytes, err=%v", n, len(b), err)
	}
	return nil
}

// Recv reads one frame of audio payload from the bearer directly,
// for callers not driving an EventLoop (e.g. tests).
func (u *UPlane) Recv(buf []byte) (int, error) { return u.sock.Recv(buf) }

// Close releases the bearer socket; called when the call is torn down.
func (u *UPlane) Close() error {
	if u == nil || u.sock == nil {
		return nil
	}
	if u.loop != nil {
		_ = u.loop.UnregisterFD(u.sock)
	}
	return u.sock.Close()
}
