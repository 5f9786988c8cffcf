package tcnl

import (
	"fmt"
)

// OptionsValue is the payload of a TCA_OPTIONS attribute. The concrete
// types form a closed per-kind table, decoding falls back to the opaque
// OtherOptions for any kind this codec has no dedicated type for, or when
// no kind preceded the options attribute.
type OptionsValue interface {
	valueLen() int
	value() ([]byte, error)
}

// OptionsResolver interprets a TCA_OPTIONS payload in light of the kind
// string observed earlier in the same message. Resolvers are total over
// kind strings: an unknown or empty kind yields OtherOptions, never an
// error. A resolver fails only when a recognized kind's payload violates
// that kind's fixed structure.
type OptionsResolver func(kind string, payload []byte) (OptionsValue, error)

// Ingress marks the parameterless ingress qdisc, which polices incoming
// traffic before it enters the stack. Its options carry no payload.
type Ingress struct{}

func (i Ingress) valueLen() int          { return 0 }
func (i Ingress) value() ([]byte, error) { return nil, nil }

// OtherOptions carries the options payload of a kind this codec has no
// dedicated representation for, preserved byte for byte.
type OtherOptions []byte

func (o OtherOptions) valueLen() int          { return len(o) }
func (o OtherOptions) value() ([]byte, error) { return o, nil }

// qdiscOptions resolves qdisc options against the kind table.
func qdiscOptions(kind string, payload []byte) (OptionsValue, error) {

	switch kind {

	case IngressKind:
		return Ingress{}, nil

	default:
		return OtherOptions(payload), nil

	}

}

// classOptions resolves class options. No class kinds have dedicated
// representations yet, everything decodes opaque.
func classOptions(kind string, payload []byte) (OptionsValue, error) {

	return OtherOptions(payload), nil

}

// filterOptions resolves filter options. No filter kinds have dedicated
// representations yet, everything decodes opaque.
func filterOptions(kind string, payload []byte) (OptionsValue, error) {

	return OtherOptions(payload), nil

}

// NewQdiscOptions builds the options value for a qdisc kind. Unlike
// decoding, construction is strict: asking for a kind with no committed
// encoding fails with ErrUnsupportedKind rather than silently emitting
// wrong wire data.
func NewQdiscOptions(kind string) (OptionsValue, error) {

	switch kind {

	case IngressKind:
		return Ingress{}, nil

	default:
		return nil, fmt.Errorf("qdisc %q: %w", kind, ErrUnsupportedKind)

	}

}

// NewClassOptions builds the options value for a class kind. No class
// kinds have committed encodings yet.
func NewClassOptions(kind string) (OptionsValue, error) {

	return nil, fmt.Errorf("class %q: %w", kind, ErrUnsupportedKind)

}

// NewFilterOptions builds the options value for a filter kind. No filter
// kinds have committed encodings yet.
func NewFilterOptions(kind string) (OptionsValue, error) {

	return nil, fmt.Errorf("filter %q: %w", kind, ErrUnsupportedKind)

}
