package main

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/sthielo/liquid2front"
)

var (
	strictJSONPath bool
	rawDumpQuery   bool
)

var dumpQueryCmd = &cobra.Command{
	Use:   "dump-query [path]",
	Short: "Dump the AST of a JSONPath-derived query expression",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return errors.New("exactly one query path argument is required")
		}
		if rawDumpQuery {
			parse := liquid2front.ParseQuery
			if strictJSONPath {
				parse = liquid2front.ParseJSONPathQuery
			}
			q, err := parse(args[0])
			if err != nil {
				return err
			}
			spew.Dump(q)
			return nil
		}
		if strictJSONPath {
			q, err := liquid2front.ParseJSONPathQuery(args[0])
			if err != nil {
				return err
			}
			fmt.Println(q.String())
			return nil
		}
		fmt.Print(liquid2front.DumpQuery(args[0]))
		return nil
	},
}

func init() {
	dumpQueryCmd.Flags().BoolVar(&strictJSONPath, "strict", false, "reject the SingularQuery selector extension and hyphenated shorthand names")
	dumpQueryCmd.Flags().BoolVar(&rawDumpQuery, "raw", false, "print the full Go value of the parsed query via go-spew instead of the text dump")
}
