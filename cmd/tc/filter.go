package main

import (
	"fmt"
	"log"
	"net"

	"github.com/spf13/cobra"

	"gitlab.com/mergetb/tech/tcnl"
)

func filterCommands(root *cobra.Command) {

	filter := &cobra.Command{
		Use:   "filter",
		Short: "filter command family",
	}
	root.AddCommand(filter)

	list := &cobra.Command{
		Use:   "list <link>",
		Short: "list traffic filters on a link",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { filterList(args[0]) },
	}
	filter.AddCommand(list)

}

func filterList(link string) {

	ifx, err := net.InterfaceByName(link)
	if err != nil {
		log.Fatal(err)
	}

	ctx, err := tcnl.OpenDefaultContext()
	if err != nil {
		log.Fatal(err)
	}
	defer ctx.Close()

	fs, err := tcnl.ReadFilters(ctx, int32(ifx.Index))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		white("kind"), white("handle"), white("parent"), white("info"),
	)

	for _, f := range fs {

		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
			green(f.Kind()),
			cyan(tcnl.HandleString(f.Msg.Handle)),
			cyan(tcnl.HandleString(f.Msg.Parent)),
			f.Msg.Info,
		)

	}

	tw.Flush()

}
