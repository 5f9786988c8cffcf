package tcnl

import (
	"fmt"
)

// MakeHandle packs a major and minor id into a qdisc or class handle.
func MakeHandle(maj, min uint16) uint32 {
	return uint32(maj)<<16 | uint32(min)
}

// HandleMaj extracts the major id of a handle.
func HandleMaj(h uint32) uint16 {
	return uint16((h & TC_H_MAJ_MASK) >> 16)
}

// HandleMin extracts the minor id of a handle.
func HandleMin(h uint32) uint16 {
	return uint16(h & TC_H_MIN_MASK)
}

// HandleString renders a handle the way iproute2 does, with the reserved
// sentinel values spelled out by name.
func HandleString(h uint32) string {

	switch h {

	case TC_H_UNSPEC:
		return "none"

	case TC_H_ROOT:
		return "root"

	case TC_H_INGRESS:
		return "ingress"

	default:
		return fmt.Sprintf("%x:%x", HandleMaj(h), HandleMin(h))

	}

}
