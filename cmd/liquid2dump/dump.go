package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/sthielo/liquid2front"
)

var rawDump bool

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Dump the markup parse tree of a template file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return errors.New("exactly one template file argument is required")
		}
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if rawDump {
			nodes, err := liquid2front.Tokenize(string(content))
			if err != nil {
				return err
			}
			spew.Dump(nodes)
			return nil
		}
		fmt.Print(liquid2front.Dump(string(content)))
		return nil
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&rawDump, "raw", false, "print the full Go value of the parsed node list via go-spew instead of the span-tree format")
}
