package tcnl

import (
	"github.com/mdlayher/netlink"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Filter is a traffic filter message. No filter kinds have dedicated
// option representations yet, options decode opaque.
type Filter struct {
	Message
}

// Unmarshal reads a filter message from a binary tc message body.
func (f *Filter) Unmarshal(buf []byte) error {

	return f.Message.Unmarshal(buf, filterOptions)

}

// ReadFilters reads the traffic filters attached to an interface.
func ReadFilters(ctx *Context, ifindex int32) ([]*Filter, error) {

	var result []*Filter

	spec := &Filter{}
	spec.Msg.Family = unix.AF_UNSPEC
	spec.Msg.Ifindex = ifindex
	data, err := spec.Marshal()
	if err != nil {
		log.WithError(err).Error("failed to marshal spec filter")
		return nil, err
	}

	m := netlink.Message{
		Header: netlink.Header{
			Type: unix.RTM_GETTFILTER,
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

			f := &Filter{}
			err := f.Unmarshal(r.Data)
			if err != nil {
				log.WithError(err).Error("error reading filter")
				return err
			}

			result = append(result, f)

		}

		return nil

	})

	return result, err

}
