package tcnl

import (
	"testing"
)

func Test_Handles(t *testing.T) {

	h := MakeHandle(0xffff, 0x2)
	if h != 0xffff0002 {
		t.Fatalf("handle %x", h)
	}
	if HandleMaj(h) != 0xffff {
		t.Fatalf("maj %x", HandleMaj(h))
	}
	if HandleMin(h) != 0x2 {
		t.Fatalf("min %x", HandleMin(h))
	}

}

func Test_HandleString(t *testing.T) {

	for h, want := range map[uint32]string{
		TC_H_UNSPEC:              "none",
		TC_H_ROOT:                "root",
		TC_H_INGRESS:             "ingress",
		MakeHandle(1, 0):         "1:0",
		MakeHandle(0x8001, 0x10): "8001:10",
	} {
		if got := HandleString(h); got != want {
			t.Fatalf("handle %x renders %q, want %q", h, got, want)
		}
	}

}
