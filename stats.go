package tcnl

import (
	"encoding/binary"
	"fmt"

	"github.com/mdlayher/netlink"
)

// Stats is the legacy TCA_STATS record, struct tc_stats. The kernel pads
// the struct out to 64 bit alignment so it occupies 40 bytes on the wire.
type Stats struct {
	Bytes      uint64
	Packets    uint32
	Drops      uint32
	Overlimits uint32
	Bps        uint32
	Pps        uint32
	Qlen       uint32
	Backlog    uint32
}

func (s Stats) tag() uint16   { return TCA_STATS }
func (s Stats) valueLen() int { return statsLen }

func (s Stats) value() ([]byte, error) {

	buf := make([]byte, statsLen)
	binary.LittleEndian.PutUint64(buf[0:8], s.Bytes)
	binary.LittleEndian.PutUint32(buf[8:12], s.Packets)
	binary.LittleEndian.PutUint32(buf[12:16], s.Drops)
	binary.LittleEndian.PutUint32(buf[16:20], s.Overlimits)
	binary.LittleEndian.PutUint32(buf[20:24], s.Bps)
	binary.LittleEndian.PutUint32(buf[24:28], s.Pps)
	binary.LittleEndian.PutUint32(buf[28:32], s.Qlen)
	binary.LittleEndian.PutUint32(buf[32:36], s.Backlog)

	return buf, nil

}

func parseStats(b []byte) (Stats, error) {

	if len(b) < statsLen {
		return Stats{}, fmt.Errorf(
			"stats %d bytes, need %d: %w", len(b), statsLen, ErrLength)
	}

	return Stats{
		Bytes:      binary.LittleEndian.Uint64(b[0:8]),
		Packets:    binary.LittleEndian.Uint32(b[8:12]),
		Drops:      binary.LittleEndian.Uint32(b[12:16]),
		Overlimits: binary.LittleEndian.Uint32(b[16:20]),
		Bps:        binary.LittleEndian.Uint32(b[20:24]),
		Pps:        binary.LittleEndian.Uint32(b[24:28]),
		Qlen:       binary.LittleEndian.Uint32(b[28:32]),
		Backlog:    binary.LittleEndian.Uint32(b[32:36]),
	}, nil

}

// Stats2 is the TCA_STATS2 attribute, itself a nested attribute stream of
// statistics entries in their own TCA_STATS_* type space.
type Stats2 []Stats2Entry

// Stats2Entry is a single nested entry inside a TCA_STATS2 attribute.
// Like Attr this is a closed set with a raw catch-all.
type Stats2Entry interface {
	tag() uint16
	valueLen() int
	value() ([]byte, error)
}

func (s Stats2) tag() uint16 { return TCA_STATS2 }

func (s Stats2) valueLen() int {

	n := 0
	for _, e := range s {
		n += nlaTotalLen(e.valueLen())
	}
	return n

}

func (s Stats2) value() ([]byte, error) {

	attrs := make([]netlink.Attribute, 0, len(s))
	for _, e := range s {

		a, err := attribute(e)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)

	}

	return netlink.MarshalAttributes(attrs)

}

func parseStats2(b []byte) (Stats2, error) {

	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return nil, fmt.Errorf("invalid stats2 attribute stream: %v: %w", err, ErrLength)
	}

	var entries Stats2
	for ad.Next() {

		raw := ad.Type()
		switch raw & NLA_TYPE_MASK {

		case TCA_STATS_BASIC:
			e, err := parseStatsBasic(ad.Bytes())
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)

		case TCA_STATS_QUEUE:
			e, err := parseStatsQueue(ad.Bytes())
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)

		case TCA_STATS_APP:
			entries = append(entries, StatsApp(ad.Bytes()))

		default:
			entries = append(entries, Stats2Other{
				Length: uint16(nlaHeaderLen + len(ad.Bytes())),
				Type:   raw,
				Data:   ad.Bytes(),
			})

		}

	}

	if err := ad.Err(); err != nil {
		return nil, fmt.Errorf("invalid stats2 attribute stream: %v: %w", err, ErrLength)
	}

	return entries, nil

}

// StatsBasic is struct gnet_stats_basic, carried in TCA_STATS_BASIC. The
// wire layout is 16 bytes, the final four being padding.
type StatsBasic struct {
	Bytes   uint64
	Packets uint32
}

func (s StatsBasic) tag() uint16   { return TCA_STATS_BASIC }
func (s StatsBasic) valueLen() int { return statsBasicLen }

func (s StatsBasic) value() ([]byte, error) {

	buf := make([]byte, statsBasicLen)
	binary.LittleEndian.PutUint64(buf[0:8], s.Bytes)
	binary.LittleEndian.PutUint32(buf[8:12], s.Packets)

	return buf, nil

}

func parseStatsBasic(b []byte) (StatsBasic, error) {

	if len(b) < statsBasicLen {
		return StatsBasic{}, fmt.Errorf(
			"basic stats %d bytes, need %d: %w", len(b), statsBasicLen, ErrLength)
	}

	return StatsBasic{
		Bytes:   binary.LittleEndian.Uint64(b[0:8]),
		Packets: binary.LittleEndian.Uint32(b[8:12]),
	}, nil

}

// StatsQueue is struct gnet_stats_queue, carried in TCA_STATS_QUEUE.
type StatsQueue struct {
	Qlen       uint32
	Backlog    uint32
	Drops      uint32
	Requeues   uint32
	Overlimits uint32
}

func (s StatsQueue) tag() uint16   { return TCA_STATS_QUEUE }
func (s StatsQueue) valueLen() int { return statsQueueLen }

func (s StatsQueue) value() ([]byte, error) {

	buf := make([]byte, statsQueueLen)
	binary.LittleEndian.PutUint32(buf[0:4], s.Qlen)
	binary.LittleEndian.PutUint32(buf[4:8], s.Backlog)
	binary.LittleEndian.PutUint32(buf[8:12], s.Drops)
	binary.LittleEndian.PutUint32(buf[12:16], s.Requeues)
	binary.LittleEndian.PutUint32(buf[16:20], s.Overlimits)

	return buf, nil

}

func parseStatsQueue(b []byte) (StatsQueue, error) {

	if len(b) < statsQueueLen {
		return StatsQueue{}, fmt.Errorf(
			"queue stats %d bytes, need %d: %w", len(b), statsQueueLen, ErrLength)
	}

	return StatsQueue{
		Qlen:       binary.LittleEndian.Uint32(b[0:4]),
		Backlog:    binary.LittleEndian.Uint32(b[4:8]),
		Drops:      binary.LittleEndian.Uint32(b[8:12]),
		Requeues:   binary.LittleEndian.Uint32(b[12:16]),
		Overlimits: binary.LittleEndian.Uint32(b[16:20]),
	}, nil

}

// StatsApp carries kind-specific TCA_STATS_APP statistics as raw bytes.
type StatsApp []byte

func (s StatsApp) tag() uint16            { return TCA_STATS_APP }
func (s StatsApp) valueLen() int          { return len(s) }
func (s StatsApp) value() ([]byte, error) { return s, nil }

// Stats2Other preserves a statistics entry whose type this codec does not
// recognize, raw type word included.
type Stats2Other netlink.Attribute

func (s Stats2Other) tag() uint16            { return s.Type }
func (s Stats2Other) valueLen() int          { return len(s.Data) }
func (s Stats2Other) value() ([]byte, error) { return s.Data, nil }
