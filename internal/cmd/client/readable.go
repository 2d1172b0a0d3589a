package client

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rzbill/seqid/pkg/id"
)

// NewReadableCommand constructs the `readable` command.
func NewReadableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readable [TIMESTAMP]",
		Short: "Format a microsecond timestamp as YYYYMMDD_HHMMSSffffff±HH",
		Long:  "Format a Unix timestamp in microseconds (or milliseconds with --ms). With no argument the current time is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := time.Now().UnixMicro()
			if len(args) == 1 {
				v, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid timestamp %q: %w", args[0], err)
				}
				ts = v
				if ms, _ := cmd.Flags().GetBool("ms"); ms {
					ts = id.Millisecond.Micros(v)
				}
			}
			cfg := localConfig(cmd)
			out, err := id.FormatReadable(ts, cfg.TZOffsetMinutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	addTZFlag(cmd)
	cmd.Flags().Bool("ms", false, "Interpret TIMESTAMP as milliseconds")
	return cmd
}

// NewParseCommand constructs the `parse` command.
func NewParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse READABLE",
		Short: "Parse a readable timestamp back to Unix microseconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := id.FromReadable(args[0])
			if err != nil {
				return err
			}
			if rfc, _ := cmd.Flags().GetBool("rfc3339"); rfc {
				fmt.Fprintln(cmd.OutOrStdout(), time.UnixMicro(ts).UTC().Format(time.RFC3339Nano))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ts)
			return nil
		},
	}
	cmd.Flags().Bool("rfc3339", false, "Print as RFC 3339 in UTC instead of microseconds")
	return cmd
}
