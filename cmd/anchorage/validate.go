// Validate command for the anchorage CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document.json>",
	Short: "Check that a frame document loads cleanly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readDocument(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "validate:", err)
			os.Exit(exitUserError)
		}

		store, err := openNativeStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "validate:", err)
			os.Exit(exitSysError)
		}
		defer store.Close()

		docs, err := newDocumentStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "validate:", err)
			os.Exit(exitSysError)
		}

		g, err := docs.Load(cmd.Context(), data, store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: invalid: %v\n", args[0], err)
			os.Exit(exitUserError)
		}

		fmt.Printf("%s: valid (%d frames)\n", args[0], g.Len())
		return nil
	},
}
