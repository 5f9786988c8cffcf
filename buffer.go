package tcnl

import (
	"encoding/binary"
	"fmt"
)

// TcMsgBuffer is a view over a byte slice holding a tc message: a fixed
// tcmsg header followed by an attribute stream. It reads and writes
// header fields in place and does not copy or own the slice.
//
// struct tcmsg layout:
//
//	0      family
//	1..4   padding
//	4..8   ifindex (signed)
//	8..12  handle
//	12..16 parent
//	16..20 info
type TcMsgBuffer []byte

// NewTcMsgBuffer wraps a slice without validation. Accessors on a buffer
// shorter than the fixed header will panic, use NewTcMsgBufferChecked for
// untrusted input.
func NewTcMsgBuffer(b []byte) TcMsgBuffer {
	return TcMsgBuffer(b)
}

// NewTcMsgBufferChecked wraps a slice, verifying it is long enough to
// hold a tcmsg header.
func NewTcMsgBufferChecked(b []byte) (TcMsgBuffer, error) {

	if len(b) < tcMsgLen {
		return nil, fmt.Errorf(
			"tc message %d bytes, need %d: %w", len(b), tcMsgLen, ErrLength)
	}

	return TcMsgBuffer(b), nil

}

func (b TcMsgBuffer) Family() uint8 {
	return b[0]
}

func (b TcMsgBuffer) Ifindex() int32 {
	return int32(binary.LittleEndian.Uint32(b[4:8]))
}

func (b TcMsgBuffer) Handle() uint32 {
	return binary.LittleEndian.Uint32(b[8:12])
}

func (b TcMsgBuffer) Parent() uint32 {
	return binary.LittleEndian.Uint32(b[12:16])
}

func (b TcMsgBuffer) Info() uint32 {
	return binary.LittleEndian.Uint32(b[16:20])
}

func (b TcMsgBuffer) SetFamily(v uint8) {
	b[0] = v
}

func (b TcMsgBuffer) SetIfindex(v int32) {
	binary.LittleEndian.PutUint32(b[4:8], uint32(v))
}

func (b TcMsgBuffer) SetHandle(v uint32) {
	binary.LittleEndian.PutUint32(b[8:12], v)
}

func (b TcMsgBuffer) SetParent(v uint32) {
	binary.LittleEndian.PutUint32(b[12:16], v)
}

func (b TcMsgBuffer) SetInfo(v uint32) {
	binary.LittleEndian.PutUint32(b[16:20], v)
}

// Payload returns the attribute stream following the fixed header.
func (b TcMsgBuffer) Payload() []byte {
	return b[tcMsgLen:]
}
