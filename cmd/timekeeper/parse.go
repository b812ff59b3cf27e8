package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jmakk0301/aws-console-time-keeper/console"
	"github.com/jmakk0301/aws-console-time-keeper/notify"
	"github.com/jmakk0301/aws-console-time-keeper/storage"
)

var (
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	errorNotify = notify.NewStderr("timekeeper: ")
)

var parseCmd = &cobra.Command{
	Use:   "parse <address>",
	Short: "Read the time range from a console address",
	Long: `parse classifies the address, decodes the time range it carries, prints
it, and records it in the capture history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		r, tag, err := console.Parse(args[0], now)
		if err != nil {
			errorNotify.Notify(fmt.Sprintf("cannot read time range (%s): %v", console.ReasonCode(err), err))
			return err
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		c := &storage.Capture{
			Address:    args[0],
			Scheme:     tag.String(),
			StartMS:    r.Start,
			EndMS:      r.End,
			Mode:       r.Mode.String(),
			CapturedAt: now,
		}
		if err := store.SaveCapture(cmd.Context(), c); err != nil {
			return fmt.Errorf("save capture: %w", err)
		}

		printRange(cmd, tag, r)
		return nil
	},
}

func printRange(cmd *cobra.Command, tag console.Scheme, r *console.TimeRange) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("scheme"), valueStyle.Render(tag.String()))
	fmt.Fprintf(out, "%s  %s\n", labelStyle.Render("start"), valueStyle.Render(r.StartTime().Format(time.RFC3339)))
	fmt.Fprintf(out, "%s    %s\n", labelStyle.Render("end"), valueStyle.Render(r.EndTime().Format(time.RFC3339)))
	fmt.Fprintf(out, "%s   %s\n", labelStyle.Render("mode"), valueStyle.Render(r.Mode.String()))
	if r.DurationText != "" {
		fmt.Fprintf(out, "%s\n", faintStyle.Render("shown as "+r.DurationText))
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
