package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmakk0301/aws-console-time-keeper/console"
)

var copyCmd = &cobra.Command{
	Use:   "copy <source> <target>",
	Short: "Copy the time range from one console address into another",
	Long: `copy reads the time range from the source address and writes it into the
target address, translating between schemes as needed. The rewritten target
address is printed on standard output, unstyled, so it can be piped.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, err := console.Parse(args[0], time.Now())
		if err != nil {
			errorNotify.Notify(fmt.Sprintf("cannot read source range (%s): %v", console.ReasonCode(err), err))
			return err
		}
		out, _, err := console.Inject(args[1], r)
		if err != nil {
			errorNotify.Notify(fmt.Sprintf("cannot write target range (%s): %v", console.ReasonCode(err), err))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var pasteCmd = &cobra.Command{
	Use:   "paste <target>",
	Short: "Write the most recently captured time range into an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		last, err := store.LastCapture(cmd.Context())
		if err != nil {
			errorNotify.Notify("no captured range yet; run parse first")
			return err
		}
		r := &console.TimeRange{Start: last.StartMS, End: last.EndMS}
		out, _, err := console.Inject(args[0], r)
		if err != nil {
			errorNotify.Notify(fmt.Sprintf("cannot write target range (%s): %v", console.ReasonCode(err), err))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(pasteCmd)
}
