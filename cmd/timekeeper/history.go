package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmakk0301/aws-console-time-keeper/console"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List captured time ranges, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		caps, err := store.ListCaptures(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("list captures: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(caps) == 0 {
			fmt.Fprintln(out, faintStyle.Render("no captures yet"))
			return nil
		}
		for _, c := range caps {
			r := console.TimeRange{Start: c.StartMS, End: c.EndMS}
			fmt.Fprintf(out, "%s  %s %s  %s\n",
				faintStyle.Render(c.CapturedAt.Local().Format("2006-01-02 15:04")),
				labelStyle.Render(c.Scheme),
				valueStyle.Render(fmt.Sprintf("%s .. %s",
					r.StartTime().Format(time.RFC3339), r.EndTime().Format(time.RFC3339))),
				faintStyle.Render(c.Mode))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "max captures to list")
	rootCmd.AddCommand(historyCmd)
}
