package tcnl

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// a kernel-produced ingress qdisc dump message
var qdiscIngressPacket = []byte{
	0,       // family
	0, 0, 0, // padding
	84, 0, 0, 0, // ifindex 84
	0, 0, 255, 255, // handle 0xffff0000
	241, 255, 255, 255, // parent 0xfffffff1
	1, 0, 0, 0, // info: refcnt 1

	// TCA_KIND "ingress"
	12, 0,
	1, 0,
	105, 110, 103, 114, 101, 115, 115, 0,

	// TCA_OPTIONS, empty
	4, 0,
	2, 0,

	// TCA_HW_OFFLOAD 0
	5, 0,
	12, 0,
	0,
	0, 0, 0,

	// TCA_STATS2
	48, 0,
	7, 0,
	// TCA_STATS_BASIC
	20, 0,
	1, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	// TCA_STATS_QUEUE
	24, 0,
	3, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,

	// TCA_STATS
	44, 0,
	3, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func Test_HeaderRead(t *testing.T) {

	b := NewTcMsgBuffer(qdiscIngressPacket)

	if b.Family() != 0 {
		t.Fatalf("family %d", b.Family())
	}
	if b.Ifindex() != 84 {
		t.Fatalf("ifindex %d", b.Ifindex())
	}
	if b.Handle() != 0xffff0000 {
		t.Fatalf("handle %x", b.Handle())
	}
	if b.Parent() != 0xfffffff1 {
		t.Fatalf("parent %x", b.Parent())
	}
	if b.Info() != 1 {
		t.Fatalf("info %d", b.Info())
	}

}

func Test_HeaderBuild(t *testing.T) {

	buf := make([]byte, tcMsgLen)

	b := NewTcMsgBuffer(buf)
	b.SetFamily(0)
	b.SetIfindex(84)
	b.SetHandle(0xffff0000)
	b.SetParent(0xfffffff1)
	b.SetInfo(1)

	if !bytes.Equal(buf, qdiscIngressPacket[:tcMsgLen]) {
		t.Fatalf("header bytes\n%v !=\n%v", buf, qdiscIngressPacket[:tcMsgLen])
	}

}

func Test_QdiscIngressRead(t *testing.T) {

	q := &Qdisc{}
	err := q.Unmarshal(qdiscIngressPacket)
	if err != nil {
		t.Fatal(err)
	}

	want := Message{
		Msg: TcMsg{
			Family:  0,
			Ifindex: 84,
			Handle:  0xffff0000,
			Parent:  0xfffffff1,
			Info:    1,
		},
		Attrs: []Attr{
			Kind("ingress"),
			Options{Value: Ingress{}},
			HwOffload(0),
			Stats2{StatsBasic{}, StatsQueue{}},
			Stats{},
		},
	}

	if diff := cmp.Diff(want, q.Message); diff != "" {
		t.Fatalf("message mismatch (-want +got):\n%s", diff)
	}

	if q.Kind() != "ingress" {
		t.Fatalf("kind %q", q.Kind())
	}

}

func Test_QdiscIngressEmit(t *testing.T) {

	q := &Qdisc{Message{
		Msg: TcMsg{
			Ifindex: 84,
			Handle:  0xffff0000,
			Parent:  0xfffffff1,
			Info:    1,
		},
		Attrs: []Attr{
			Kind("ingress"),
			Options{Value: Ingress{}},
		},
	}}

	if q.BufferLen() != 36 {
		t.Fatalf("buffer len %d != 36", q.BufferLen())
	}

	buf, err := q.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(buf, qdiscIngressPacket[:36]) {
		t.Fatalf("emitted bytes\n%v !=\n%v", buf, qdiscIngressPacket[:36])
	}

}

func Test_RoundTrip(t *testing.T) {

	q := &Qdisc{}
	err := q.Unmarshal(qdiscIngressPacket)
	if err != nil {
		t.Fatal(err)
	}

	if q.BufferLen() != len(qdiscIngressPacket) {
		t.Fatalf("buffer len %d != %d", q.BufferLen(), len(qdiscIngressPacket))
	}

	out, err := q.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, qdiscIngressPacket) {
		t.Fatalf("re-encode not byte identical\n%v !=\n%v",
			out, qdiscIngressPacket)
	}

	// encoding again must produce the same bytes
	again, err := q.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, again) {
		t.Fatal("re-encode not idempotent")
	}

	// and decoding the re-encoding must produce the same message
	q2 := &Qdisc{}
	err = q2.Unmarshal(out)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(q.Message, q2.Message) {
		t.Fatal("decoded messages do not match")
	}

}

func Test_BufferLen(t *testing.T) {

	for _, a := range []Attr{
		Kind("ingress"),
		Options{Value: Ingress{}},
		HwOffload(0),
		Stats2{StatsBasic{}, StatsQueue{}},
		Stats{},
		Other{Length: 9, Type: 77, Data: []byte{1, 2, 3, 4, 5}},
	} {
		if nlaTotalLen(a.valueLen()) != nlaAlign(nlaHeaderLen+a.valueLen()) {
			t.Fatalf("attr type %d length arithmetic broken", a.tag())
		}
	}

	m := Message{Attrs: []Attr{
		Kind("ingress"),           // 4+8
		Options{Value: Ingress{}}, // 4
		Stats2{StatsBasic{}},      // 4+20
	}}
	if m.BufferLen() != tcMsgLen+12+4+24 {
		t.Fatalf("message buffer len %d", m.BufferLen())
	}

}

func Test_TruncatedHeader(t *testing.T) {

	q := &Qdisc{}
	err := q.Unmarshal(qdiscIngressPacket[:tcMsgLen-1])
	if !errors.Is(err, ErrLength) {
		t.Fatalf("expected length error, got %v", err)
	}

}

func Test_TruncatedAttribute(t *testing.T) {

	// cut inside the kind attribute's declared length
	q := &Qdisc{}
	err := q.Unmarshal(qdiscIngressPacket[:tcMsgLen+10])
	if !errors.Is(err, ErrLength) {
		t.Fatalf("expected length error, got %v", err)
	}

}

func Test_TruncatedStats(t *testing.T) {

	msg := append([]byte{}, qdiscIngressPacket[:tcMsgLen]...)
	msg = append(msg,
		// TCA_STATS with a 10 byte payload
		14, 0,
		3, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, // padding
	)

	q := &Qdisc{}
	err := q.Unmarshal(msg)
	if !errors.Is(err, ErrLength) {
		t.Fatalf("expected length error, got %v", err)
	}

}

func Test_MalformedKind(t *testing.T) {

	msg := append([]byte{}, qdiscIngressPacket[:tcMsgLen]...)
	msg = append(msg,
		// TCA_KIND that is not a valid string
		7, 0,
		1, 0,
		0xff, 0xfe, 0xfd,
		0, // padding
	)

	q := &Qdisc{}
	err := q.Unmarshal(msg)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected malformed field error, got %v", err)
	}

}

func Test_EmitShortBuffer(t *testing.T) {

	q := &Qdisc{}
	err := q.Unmarshal(qdiscIngressPacket)
	if err != nil {
		t.Fatal(err)
	}

	err = q.Emit(make([]byte, q.BufferLen()-1))
	if !errors.Is(err, ErrLength) {
		t.Fatalf("expected length error, got %v", err)
	}

}

func Test_UnknownAttribute(t *testing.T) {

	msg := append([]byte{}, qdiscIngressPacket[:tcMsgLen]...)
	msg = append(msg,
		// type 77 is not in the known set
		9, 0,
		77, 0,
		1, 2, 3, 4, 5,
		0, 0, 0, // padding
	)

	q := &Qdisc{}
	err := q.Unmarshal(msg)
	if err != nil {
		t.Fatal(err)
	}

	if len(q.Attrs) != 1 {
		t.Fatalf("attr count %d", len(q.Attrs))
	}

	o, ok := q.Attrs[0].(Other)
	if !ok {
		t.Fatalf("expected Other, got %T", q.Attrs[0])
	}
	if o.Type != 77 {
		t.Fatalf("type %d", o.Type)
	}
	if !bytes.Equal(o.Data, []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("payload %v", o.Data)
	}

	out, err := q.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, msg) {
		t.Fatalf("unknown attribute did not round trip\n%v !=\n%v", out, msg)
	}

}
