// Anchors commands for the anchorage CLI.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spatialkit/anchorage/pkg/types"
)

var anchorsCmd = &cobra.Command{
	Use:   "anchors",
	Short: "Inspect the native anchor store",
}

func init() {
	anchorsCmd.AddCommand(anchorsListCmd)
	anchorsCmd.AddCommand(anchorsDeleteCmd)
}

var anchorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted native anchors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openNativeStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "anchors list:", err)
			os.Exit(exitSysError)
		}
		defer store.Close()

		records, err := store.ListAnchors(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, "anchors list:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			out, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, "marshal JSON:", err)
				os.Exit(exitSysError)
			}
			fmt.Println(string(out))
			return nil
		}

		if len(records) == 0 {
			fmt.Println("no anchors")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%-40s", r.AnchorID)
			if r.Accuracy.Known() {
				fmt.Printf("  ±%.3fm", float64(r.Accuracy))
			}
			p := r.Pose.Position
			fmt.Printf("  at (%.3f, %.3f, %.3f)  %s\n", p.X, p.Y, p.Z, r.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var anchorsDeleteCmd = &cobra.Command{
	Use:   "delete <anchor-id>",
	Short: "Delete a persisted native anchor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openNativeStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "anchors delete:", err)
			os.Exit(exitSysError)
		}
		defer store.Close()

		if err := store.DeleteAnchor(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, types.ErrAnchorNotFound) {
				fmt.Fprintf(os.Stderr, "anchor %q not found\n", args[0])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "anchors delete:", err)
			os.Exit(exitSysError)
		}

		fmt.Println("deleted", args[0])
		return nil
	},
}
