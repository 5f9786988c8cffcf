package main

import (
	"fmt"
	"log"
	"net"

	"github.com/spf13/cobra"

	"gitlab.com/mergetb/tech/tcnl"
)

func qdiscCommands(root *cobra.Command) {

	qdisc := &cobra.Command{
		Use:   "qdisc",
		Short: "qdisc command family",
	}
	root.AddCommand(qdisc)

	list := &cobra.Command{
		Use:   "list",
		Short: "list qdiscs",
		Args:  cobra.NoArgs,
		Run:   func(cmd *cobra.Command, args []string) { qdiscList() },
	}
	qdisc.AddCommand(list)

	addIngress := &cobra.Command{
		Use:   "add-ingress <link>",
		Short: "attach an ingress qdisc to a link",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { qdiscIngress(args[0], true) },
	}
	qdisc.AddCommand(addIngress)

	delIngress := &cobra.Command{
		Use:   "del-ingress <link>",
		Short: "remove the ingress qdisc from a link",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { qdiscIngress(args[0], false) },
	}
	qdisc.AddCommand(delIngress)

}

func qdiscList() {

	ctx, err := tcnl.OpenDefaultContext()
	if err != nil {
		log.Fatal(err)
	}
	defer ctx.Close()

	qs, err := tcnl.ReadQdiscs(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		white("kind"), white("link"), white("handle"), white("parent"),
		white("stats"),
	)

	for _, q := range qs {

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			green(q.Kind()),
			blue(linkName(q.Msg.Ifindex)),
			cyan(tcnl.HandleString(q.Msg.Handle)),
			cyan(tcnl.HandleString(q.Msg.Parent)),
			qdiscStats(q),
		)

	}

	tw.Flush()

}

func qdiscIngress(link string, add bool) {

	ifx, err := net.InterfaceByName(link)
	if err != nil {
		log.Fatal(err)
	}

	q, err := tcnl.NewIngressQdisc(int32(ifx.Index))
	if err != nil {
		log.Fatal(err)
	}

	ctx, err := tcnl.OpenDefaultContext()
	if err != nil {
		log.Fatal(err)
	}
	defer ctx.Close()

	if add {
		err = tcnl.AddQdisc(ctx, q)
	} else {
		err = tcnl.DelQdisc(ctx, q)
	}
	if err != nil {
		log.Fatal(err)
	}

}

func linkName(ifindex int32) string {

	ifx, err := net.InterfaceByIndex(int(ifindex))
	if err != nil {
		return fmt.Sprintf("%d", ifindex)
	}

	return ifx.Name

}

func qdiscStats(q *tcnl.Qdisc) string {

	for _, a := range q.Attrs {
		switch s := a.(type) {

		case tcnl.Stats:
			return fmt.Sprintf("bytes %d packets %d drops %d",
				s.Bytes, s.Packets, s.Drops)

		case tcnl.Stats2:
			for _, e := range s {
				if b, ok := e.(tcnl.StatsBasic); ok {
					return fmt.Sprintf("bytes %d packets %d",
						b.Bytes, b.Packets)
				}
			}

		}
	}

	return "-"

}
