package tcnl

// tc message attribute types, from linux/rtnetlink.h
const (
	TCA_UNSPEC uint16 = iota
	TCA_KIND
	TCA_OPTIONS
	TCA_STATS
	TCA_XSTATS
	TCA_RATE
	TCA_FCNT
	TCA_STATS2
	TCA_STAB
	TCA_PAD
	TCA_DUMP_INVISIBLE
	TCA_CHAIN
	TCA_HW_OFFLOAD
)

// nested statistics attribute types inside TCA_STATS2, from
// linux/gen_stats.h
const (
	TCA_STATS_UNSPEC uint16 = iota
	TCA_STATS_BASIC
	TCA_STATS_RATE_EST
	TCA_STATS_QUEUE
	TCA_STATS_APP
	TCA_STATS_RATE_EST64
	TCA_STATS_PAD
)

// qdisc/class handles, from linux/pkt_sched.h
const (
	TC_H_MAJ_MASK uint32 = 0xFFFF0000
	TC_H_MIN_MASK uint32 = 0x0000FFFF

	TC_H_UNSPEC  uint32 = 0
	TC_H_ROOT    uint32 = 0xFFFFFFFF
	TC_H_INGRESS uint32 = 0xFFFFFFF1
	TC_H_CLSACT  uint32 = TC_H_INGRESS
)

// attribute type word flag bits, from linux/netlink.h. the high bits of
// the 16 bit type are flags, not part of the attribute type itself.
const (
	NLA_F_NESTED        uint16 = 1 << 15
	NLA_F_NET_BYTEORDER uint16 = 1 << 14
	NLA_TYPE_MASK       uint16 = ^(NLA_F_NESTED | NLA_F_NET_BYTEORDER)
)

// fixed wire layout sizes
const (
	// struct tcmsg: family + 3 pad bytes + ifindex + handle + parent + info
	tcMsgLen = 20

	// attribute header: 2 byte length + 2 byte type
	nlaHeaderLen = 4

	// struct tc_stats, padded out to u64 alignment by the kernel
	statsLen = 40

	// struct gnet_stats_basic as carried in TCA_STATS_BASIC
	statsBasicLen = 16

	// struct gnet_stats_queue
	statsQueueLen = 20
)

// qdisc kinds with committed option encodings
const (
	IngressKind = "ingress"
)
