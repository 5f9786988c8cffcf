package tcnl

import (
	"fmt"
	"unicode/utf8"

	"github.com/mdlayher/netlink"
)

// Attr is a single tc message attribute. The concrete types below form a
// closed set, one per recognized TCA_* attribute type plus the Other
// catch-all, which preserves unrecognized attributes byte for byte. New
// attribute types are supported by adding a concrete type here and a case
// to the decode switch in message.go, there is no runtime registry.
type Attr interface {
	tag() uint16
	valueLen() int
	value() ([]byte, error)
}

// attribute renders an attr into mdlayher/netlink wire form.
func attribute(a Attr) (netlink.Attribute, error) {

	switch raw := a.(type) {
	case Other:
		return netlink.Attribute(raw), nil
	case Stats2Other:
		return netlink.Attribute(raw), nil
	}

	v, err := a.value()
	if err != nil {
		return netlink.Attribute{}, err
	}

	return netlink.Attribute{
		Length: uint16(nlaHeaderLen + len(v)),
		Type:   a.tag(),
		Data:   v,
	}, nil

}

// Unspec carries a TCA_UNSPEC payload unchanged.
type Unspec []byte

func (u Unspec) tag() uint16            { return TCA_UNSPEC }
func (u Unspec) valueLen() int          { return len(u) }
func (u Unspec) value() ([]byte, error) { return u, nil }

// Kind names the qdisc, class or filter implementation the message refers
// to, e.g. "ingress". On the wire it is a null terminated string.
type Kind string

func (k Kind) tag() uint16   { return TCA_KIND }
func (k Kind) valueLen() int { return len(k) + 1 }

func (k Kind) value() ([]byte, error) {
	return append([]byte(k), 0), nil
}

// parseKind reads a null terminated kind string from an attribute
// payload.
func parseKind(b []byte) (string, error) {

	for i, c := range b {
		if c == 0 {
			b = b[:i]
			break
		}
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("kind is not a valid string: %w", ErrMalformed)
	}

	return string(b), nil

}

// Options carries a TCA_OPTIONS payload, interpreted according to the
// kind observed earlier in the same message.
type Options struct {
	Value OptionsValue
}

func (o Options) tag() uint16            { return TCA_OPTIONS }
func (o Options) valueLen() int          { return o.Value.valueLen() }
func (o Options) value() ([]byte, error) { return o.Value.value() }

// XStats carries kind-specific extended statistics as raw bytes.
type XStats []byte

func (x XStats) tag() uint16            { return TCA_XSTATS }
func (x XStats) valueLen() int          { return len(x) }
func (x XStats) value() ([]byte, error) { return x, nil }

// Rate carries a TCA_RATE rate estimator configuration as raw bytes.
type Rate []byte

func (r Rate) tag() uint16            { return TCA_RATE }
func (r Rate) valueLen() int          { return len(r) }
func (r Rate) value() ([]byte, error) { return r, nil }

// Fcnt carries a TCA_FCNT filter count as raw bytes.
type Fcnt []byte

func (f Fcnt) tag() uint16            { return TCA_FCNT }
func (f Fcnt) valueLen() int          { return len(f) }
func (f Fcnt) value() ([]byte, error) { return f, nil }

// Stab carries a TCA_STAB size table as raw bytes.
type Stab []byte

func (s Stab) tag() uint16            { return TCA_STAB }
func (s Stab) valueLen() int          { return len(s) }
func (s Stab) value() ([]byte, error) { return s, nil }

// Chain carries a TCA_CHAIN filter chain index as raw bytes.
type Chain []byte

func (c Chain) tag() uint16            { return TCA_CHAIN }
func (c Chain) valueLen() int          { return len(c) }
func (c Chain) value() ([]byte, error) { return c, nil }

// HwOffload reports whether the qdisc is offloaded to hardware.
type HwOffload uint8

func (h HwOffload) tag() uint16   { return TCA_HW_OFFLOAD }
func (h HwOffload) valueLen() int { return 1 }

func (h HwOffload) value() ([]byte, error) {
	return []byte{uint8(h)}, nil
}

// Other preserves an attribute whose type this codec does not recognize.
// The type word is kept raw, flag bits included, so the attribute
// re-encodes byte-identically. Unknown attributes are not an error, newer
// kernels are free to send types this codec has not learned yet.
type Other netlink.Attribute

func (o Other) tag() uint16            { return o.Type }
func (o Other) valueLen() int          { return len(o.Data) }
func (o Other) value() ([]byte, error) { return o.Data, nil }
