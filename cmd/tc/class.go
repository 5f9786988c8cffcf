package main

import (
	"fmt"
	"log"
	"net"

	"github.com/spf13/cobra"

	"gitlab.com/mergetb/tech/tcnl"
)

func classCommands(root *cobra.Command) {

	class := &cobra.Command{
		Use:   "class",
		Short: "class command family",
	}
	root.AddCommand(class)

	list := &cobra.Command{
		Use:   "list <link>",
		Short: "list traffic classes on a link",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { classList(args[0]) },
	}
	class.AddCommand(list)

}

func classList(link string) {

	ifx, err := net.InterfaceByName(link)
	if err != nil {
		log.Fatal(err)
	}

	ctx, err := tcnl.OpenDefaultContext()
	if err != nil {
		log.Fatal(err)
	}
	defer ctx.Close()

	cs, err := tcnl.ReadClasses(ctx, int32(ifx.Index))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		white("kind"), white("handle"), white("parent"),
	)

	for _, c := range cs {

		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			green(c.Kind()),
			cyan(tcnl.HandleString(c.Msg.Handle)),
			cyan(tcnl.HandleString(c.Msg.Parent)),
		)

	}

	tw.Flush()

}
