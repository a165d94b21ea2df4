// Show command for the anchorage CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spatialkit/anchorage/pkg/types"
)

// frameSummary is the JSON shape emitted by `show --json`.
type frameSummary struct {
	ID       string      `json:"id"`
	Kind     string      `json:"kind"`
	State    types.State `json:"state"`
	Accuracy *float64    `json:"accuracy,omitempty"`
	Pose     *types.Pose `json:"pose,omitempty"`
}

var showCmd = &cobra.Command{
	Use:   "show <document.json>",
	Short: "Display the frames in a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readDocument(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "show:", err)
			os.Exit(exitUserError)
		}

		store, err := openNativeStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "show:", err)
			os.Exit(exitSysError)
		}
		defer store.Close()

		docs, err := newDocumentStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "show:", err)
			os.Exit(exitSysError)
		}

		g, err := docs.Load(cmd.Context(), data, store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "show: %v\n", err)
			os.Exit(exitUserError)
		}

		summaries := make([]frameSummary, 0, g.Len())
		for _, f := range g.Frames() {
			f.Refresh()
			s := f.Strategy()
			fs := frameSummary{
				ID:    f.ID(),
				Kind:  s.Kind(),
				State: s.State(),
			}
			if acc := s.Accuracy(); acc.Known() {
				m := float64(acc)
				fs.Accuracy = &m
			}
			if pose, ok := f.Pose(); ok {
				p := pose
				fs.Pose = &p
			}
			summaries = append(summaries, fs)
		}

		if flagJSON {
			out, err := json.MarshalIndent(summaries, "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, "marshal JSON:", err)
				os.Exit(exitSysError)
			}
			fmt.Println(string(out))
			return nil
		}

		for _, fs := range summaries {
			fmt.Printf("%-24s %-14s %s", fs.ID, fs.Kind, fs.State)
			if fs.Accuracy != nil {
				fmt.Printf("  ±%.3fm", *fs.Accuracy)
			}
			if fs.Pose != nil {
				p := fs.Pose.Position
				fmt.Printf("  at (%.3f, %.3f, %.3f)", p.X, p.Y, p.Z)
			}
			fmt.Println()
		}
		return nil
	},
}
