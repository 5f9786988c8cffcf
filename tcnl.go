// Package tcnl is a codec and thin transport for the rtnetlink traffic
// control families: queueing disciplines, classes and filters. The codec
// converts between raw tc message bodies and typed in-memory values and
// performs no I/O of its own; the transport functions at the bottom of the
// per-family files hand codec output to a netlink socket.
package tcnl

import (
	"encoding/binary"
	"fmt"
	"os"
	"runtime"

	"github.com/mdlayher/netlink"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Context carries the network namespace tc operations run against. The
// zero value targets the namespace of the calling thread.
type Context struct {
	Ns  int
	nsf *os.File
}

// OpenDefaultContext returns a context for the current network namespace.
func OpenDefaultContext() (*Context, error) {
	return &Context{}, nil
}

// OpenContext returns a context for a named network namespace as managed
// by iproute2 under /var/run/netns.
func OpenContext(namespace string) (*Context, error) {

	f, err := os.Open("/var/run/netns/" + namespace)
	if err != nil {
		log.WithError(err).Error("failed to open netns")
		return nil, err
	}

	return &Context{Ns: int(f.Fd()), nsf: f}, nil

}

// Fd returns the namespace file descriptor of this context.
func (c *Context) Fd() int {
	return c.Ns
}

// Close releases the namespace handle held by this context.
func (c *Context) Close() error {

	if c.nsf != nil {
		return c.nsf.Close()
	}
	return nil

}

func withNetlink(f func(*netlink.Conn) error) error {

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	thisNS, err := os.Open(
		fmt.Sprintf("/proc/%d/task/%d/ns/net", os.Getpid(), unix.Gettid()))
	if err != nil {
		log.WithError(err).Error("failed to open this netns")
		return fmt.Errorf("failed to open netns")
	}
	defer thisNS.Close()

	conn, err := netlink.Dial(
		unix.NETLINK_ROUTE, &netlink.Config{NetNS: int(thisNS.Fd())})
	if err != nil {
		log.WithError(err).Error("failed to dial netlink")
		return err
	}
	defer conn.Close()

	return f(conn)

}

func withNsNetlink(ns int, f func(*netlink.Conn) error) error {

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	conn, err := netlink.Dial(
		unix.NETLINK_ROUTE, &netlink.Config{NetNS: ns})
	if err != nil {
		log.WithError(err).Error("failed to dial netlink")
		return err
	}
	defer conn.Close()

	return f(conn)

}

// withContext runs f on a netlink connection in the context's namespace.
// The default context dials the calling thread's own namespace by fd so
// the connection does not drift if the thread is moved.
func withContext(ctx *Context, f func(*netlink.Conn) error) error {

	if ctx.Fd() == 0 {
		return withNetlink(f)
	}
	return withNsNetlink(ctx.Fd(), f)

}

func netlinkUpdate(ctx *Context, messages []netlink.Message) error {
	return withContext(ctx, func(c *netlink.Conn) error {

		for _, m := range messages {

			resp, err := c.Execute(m)
			if err != nil {
				return err
			}

			for _, r := range resp {

				if r.Header.Type == netlink.Error {

					code := binary.LittleEndian.Uint32(r.Data[0:4])

					// code == 0 is just an acknowledgement
					if code != 0 {
						log.WithFields(log.Fields{
							"code": code,
						}).Warn("netlink update failed")
						return fmt.Errorf(string(r.Data))
					}

				}

			}

		}

		return nil

	})
}
