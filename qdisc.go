package tcnl

import (
	"fmt"

	"github.com/mdlayher/netlink"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Qdisc is a queueing discipline message. Its options attribute is
// resolved against the qdisc kind table.
type Qdisc struct {
	Message
}

// NewIngressQdisc builds the message that attaches an ingress qdisc to
// the given interface.
func NewIngressQdisc(ifindex int32) (*Qdisc, error) {

	opts, err := NewQdiscOptions(IngressKind)
	if err != nil {
		return nil, err
	}

	return &Qdisc{Message{
		Msg: TcMsg{
			Ifindex: ifindex,
			Handle:  MakeHandle(0xffff, 0),
			Parent:  TC_H_INGRESS,
		},
		Attrs: []Attr{
			Kind(IngressKind),
			Options{Value: opts},
		},
	}}, nil

}

// Unmarshal reads a qdisc message from a binary tc message body.
func (q *Qdisc) Unmarshal(buf []byte) error {

	return q.Message.Unmarshal(buf, qdiscOptions)

}

// ReadQdiscs reads all queueing disciplines in the context's namespace.
func ReadQdiscs(ctx *Context) ([]*Qdisc, error) {

	var result []*Qdisc

	spec := &Qdisc{}
	spec.Msg.Family = unix.AF_UNSPEC
	data, err := spec.Marshal()
	if err != nil {
		log.WithError(err).Error("failed to marshal spec qdisc")
		return nil, err
	}

	m := netlink.Message{
		Header: netlink.Header{
			Type: unix.RTM_GETQDISC,
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

			q := &Qdisc{}
			err := q.Unmarshal(r.Data)
			if err != nil {
				log.WithError(err).Error("error reading qdisc")
				return err
			}

			result = append(result, q)

		}

		return nil

	})

	return result, err

}

// AddQdisc attaches the specified qdisc.
func AddQdisc(ctx *Context, q *Qdisc) error {

	return modifyQdisc(ctx, q, unix.RTM_NEWQDISC)

}

// DelQdisc removes the specified qdisc.
func DelQdisc(ctx *Context, q *Qdisc) error {

	return modifyQdisc(ctx, q, unix.RTM_DELQDISC)

}

func modifyQdisc(ctx *Context, q *Qdisc, op uint16) error {

	fields := log.Fields{
		"kind":    q.Kind(),
		"ifindex": q.Msg.Ifindex,
		"parent":  HandleString(q.Msg.Parent),
	}

	flags := netlink.Request | netlink.Acknowledge

	switch op {

	case unix.RTM_NEWQDISC:
		log.WithFields(fields).Info("adding qdisc")
		flags |= netlink.Create | netlink.Excl

	case unix.RTM_DELQDISC:
		log.WithFields(fields).Info("removing qdisc")

	default:
		return fmt.Errorf("unsupported qdisc operation %d", op)

	}

	data, err := q.Marshal()
	if err != nil {
		log.WithError(err).Error("failed to marshal qdisc")
		return err
	}

	m := netlink.Message{
		Header: netlink.Header{
			Type:  netlink.HeaderType(op),
			Flags: flags,
		},
		Data: data,
	}

	return netlinkUpdate(ctx, []netlink.Message{m})

}
