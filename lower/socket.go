package lower

// Family is the DECT socket address family discriminator.
type Family uint8

const (
	// FamilyDECT identifies a DLC-layer data link socket.
	FamilyDECT Family = iota
	// FamilyDECTLU identifies a U-plane (LU1-SAP) bearer socket.
	FamilyDECTLU
)

// Addr is a DECT-family socket address: a family tag plus an opaque
// subtype-specific payload (e.g. the link-layer endpoint identifier
// exposed by the lower layers for a U-plane bearer).
type Addr struct {
	Family  Family
	Payload []byte
}

// Socket is a non-blocking DECT-family socket. recv is one-shot per
// readiness event and send accepts short writes without retrying
//.
type Socket interface {
	FD

	Connect(addr Addr) error
	Send(b []byte) (n int, err error)
	Recv(buf []byte) (n int, err error)
	Close() error
}

// SocketFactory creates Sockets in the DECT address family, e.g. a
// stream socket tagged LU1-SAP for the U-plane.
type SocketFactory interface {
	NewSocket(family Family) (Socket, error)
}

// Allocator lets the core's memory allocation policy be replaced by an
// arena or pool implementation.
type Allocator interface {
	Malloc(size int) []byte
	Zalloc(size int) []byte
	Free(b []byte)
}
