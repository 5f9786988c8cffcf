package tcnl

// attribute alignment, NLA_ALIGN from linux/netlink.h
const nlaAlignTo = 4

func nlaAlign(n int) int {
	return (n + nlaAlignTo - 1) & ^(nlaAlignTo - 1)
}

// total space an attribute with an n byte value occupies on the wire,
// header and trailing padding included
func nlaTotalLen(n int) int {
	return nlaAlign(nlaHeaderLen + n)
}
