package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/triplify"
)

// Run executes the extractors command.
func (c *ExtractorsCmd) Run(deps *Dependencies) error {
	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINPUT\tCONTENT TYPES")
	for _, f := range deps.Extractors.Factories() {
		desc := f.Description()
		input := "markup"
		if desc.Input == triplify.InputRaw {
			input = "raw"
		}
		types := make([]string, len(desc.ContentTypes))
		for i, mr := range desc.ContentTypes {
			types[i] = mr.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", desc.Name, input, strings.Join(types, ", "))
	}
	return tw.Flush()
}
