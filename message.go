package tcnl

import (
	"fmt"

	"github.com/mdlayher/netlink"
	log "github.com/sirupsen/logrus"
)

// TcMsg mirrors the kernel tcmsg header leading every traffic control
// message.
type TcMsg struct {
	Family  uint8
	Ifindex int32
	Handle  uint32
	Parent  uint32
	Info    uint32
}

// Message is one traffic control message body: a tcmsg header followed by
// an ordered attribute stream. Attribute order from the wire is preserved
// so a decoded message re-encodes byte-identically.
type Message struct {
	Msg   TcMsg
	Attrs []Attr
}

// Kind returns the kind named by the message's kind attribute, or the
// empty string if the message carries none.
func (m *Message) Kind() string {

	for _, a := range m.Attrs {
		if k, ok := a.(Kind); ok {
			return string(k)
		}
	}

	return ""

}

// Unmarshal reads a message from a binary tc message body. Options
// attributes are interpreted by the given resolver, parameterized on the
// kind attribute seen earlier in the stream. The kernel emits kind before
// options, an options attribute with no preceding kind decodes opaque.
func (m *Message) Unmarshal(buf []byte, resolve OptionsResolver) error {

	b, err := NewTcMsgBufferChecked(buf)
	if err != nil {
		return fmt.Errorf("failed to parse tc message header: %w", err)
	}

	m.Msg = TcMsg{
		Family:  b.Family(),
		Ifindex: b.Ifindex(),
		Handle:  b.Handle(),
		Parent:  b.Parent(),
		Info:    b.Info(),
	}

	ad, err := netlink.NewAttributeDecoder(b.Payload())
	if err != nil {
		log.WithError(err).Error("error creating tc attribute decoder")
		return fmt.Errorf("failed to parse tc attribute stream: %v: %w", err, ErrLength)
	}

	// the kind attribute determines how a later options attribute in the
	// same message is interpreted, keep track of the last one seen
	var kind string

	for ad.Next() {

		raw := ad.Type()
		switch raw & NLA_TYPE_MASK {

		case TCA_UNSPEC:
			m.Attrs = append(m.Attrs, Unspec(ad.Bytes()))

		case TCA_KIND:
			kind, err = parseKind(ad.Bytes())
			if err != nil {
				return fmt.Errorf("failed to parse tc kind: %w", err)
			}
			m.Attrs = append(m.Attrs, Kind(kind))

		case TCA_OPTIONS:
			v, err := resolve(kind, ad.Bytes())
			if err != nil {
				return fmt.Errorf("failed to parse options: %w", err)
			}
			m.Attrs = append(m.Attrs, Options{Value: v})

		case TCA_STATS:
			s, err := parseStats(ad.Bytes())
			if err != nil {
				return fmt.Errorf("failed to parse tc stats: %w", err)
			}
			m.Attrs = append(m.Attrs, s)

		case TCA_XSTATS:
			m.Attrs = append(m.Attrs, XStats(ad.Bytes()))

		case TCA_RATE:
			m.Attrs = append(m.Attrs, Rate(ad.Bytes()))

		case TCA_FCNT:
			m.Attrs = append(m.Attrs, Fcnt(ad.Bytes()))

		case TCA_STATS2:
			s2, err := parseStats2(ad.Bytes())
			if err != nil {
				return fmt.Errorf("failed to parse tc stats2: %w", err)
			}
			m.Attrs = append(m.Attrs, s2)

		case TCA_STAB:
			m.Attrs = append(m.Attrs, Stab(ad.Bytes()))

		case TCA_CHAIN:
			m.Attrs = append(m.Attrs, Chain(ad.Bytes()))

		case TCA_HW_OFFLOAD:
			if len(ad.Bytes()) != 1 {
				return fmt.Errorf("hw offload flag %d bytes, need 1: %w",
					len(ad.Bytes()), ErrLength)
			}
			m.Attrs = append(m.Attrs, HwOffload(ad.Bytes()[0]))

		default:
			m.Attrs = append(m.Attrs, Other{
				Length: uint16(nlaHeaderLen + len(ad.Bytes())),
				Type:   raw,
				Data:   ad.Bytes(),
			})

		}

	}

	if err := ad.Err(); err != nil {
		return fmt.Errorf("failed to parse tc attribute stream: %v: %w", err, ErrLength)
	}

	return nil

}

// BufferLen returns the exact number of bytes Emit will fill: the fixed
// header plus every attribute's padded encoded length.
func (m *Message) BufferLen() int {

	n := tcMsgLen
	for _, a := range m.Attrs {
		n += nlaTotalLen(a.valueLen())
	}

	return n

}

// Emit writes the message into buf, which must hold at least BufferLen()
// bytes. Attributes appear in their original order at aligned offsets.
// Header padding and attribute alignment bytes are written as zero.
func (m *Message) Emit(buf []byte) error {

	if len(buf) < m.BufferLen() {
		return fmt.Errorf("emit buffer %d bytes, need %d: %w",
			len(buf), m.BufferLen(), ErrLength)
	}

	b := NewTcMsgBuffer(buf)
	b.SetFamily(m.Msg.Family)
	b.SetIfindex(m.Msg.Ifindex)
	b.SetHandle(m.Msg.Handle)
	b.SetParent(m.Msg.Parent)
	b.SetInfo(m.Msg.Info)

	attrs, err := m.attributes()
	if err != nil {
		return err
	}

	ab, err := netlink.MarshalAttributes(attrs)
	if err != nil {
		log.WithError(err).Error("failed to marshal tc attributes")
		return err
	}
	copy(b.Payload(), ab)

	return nil

}

// Marshal encodes the message into a freshly allocated, exactly sized
// buffer.
func (m *Message) Marshal() ([]byte, error) {

	buf := make([]byte, m.BufferLen())
	if err := m.Emit(buf); err != nil {
		return nil, err
	}

	return buf, nil

}

func (m *Message) attributes() ([]netlink.Attribute, error) {

	attrs := make([]netlink.Attribute, 0, len(m.Attrs))
	for _, a := range m.Attrs {

		na, err := attribute(a)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, na)

	}

	return attrs, nil

}
