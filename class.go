package tcnl

import (
	"github.com/mdlayher/netlink"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Class is a traffic class message. No class kinds have dedicated option
// representations yet, options decode opaque.
type Class struct {
	Message
}

// Unmarshal reads a class message from a binary tc message body.
func (c *Class) Unmarshal(buf []byte) error {

	return c.Message.Unmarshal(buf, classOptions)

}

// ReadClasses reads the traffic classes attached to an interface.
func ReadClasses(ctx *Context, ifindex int32) ([]*Class, error) {

	var result []*Class

	spec := &Class{}
	spec.Msg.Family = unix.AF_UNSPEC
	spec.Msg.Ifindex = ifindex
	data, err := spec.Marshal()
	if err != nil {
		log.WithError(err).Error("failed to marshal spec class")
		return nil, err
	}

	m := netlink.Message{
		Header: netlink.Header{
			Type: unix.RTM_GETTCLASS,
			Flags: netlink.Request |
				netlink.Atomic |
				netlink.Root,
		},
		Data: data,
	}

	err = withContext(ctx, func(conn *netlink.Conn) error {

		resp, err := conn.Execute(m)
		if err != nil {
			return err
		}

		for _, r := range resp {

			c := &Class{}
			err := c.Unmarshal(r.Data)
			if err != nil {
				log.WithError(err).Error("error reading class")
				return err
			}

			result = append(result, c)

		}

		return nil

	})

	return result, err

}
