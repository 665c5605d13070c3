// Command elreasoner classifies an OBO-like ontology file into its
// named subsumption taxonomy.
//
// Usage:
//
//	elreasoner classify <input.obo> [flags]
//
// Exit code 0 on success, nonzero on parse, I/O, or validation failure.
// Timing and statistics are written to stderr; no state is persisted
// and no environment variables are consulted.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "elreasoner",
		Short:         "Classify an ℰℒ ontology into its named subsumption taxonomy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newClassifyCmd())
	return root
}
