package client

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
)

// NewGenerateCommand constructs the `generate` command.
func NewGenerateCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Issue new identifiers",
		Aliases: []string{"gen"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scheme, _ := cmd.Flags().GetString("scheme")
			count, _ := cmd.Flags().GetInt("count")
			if count < 1 {
				return errors.New("--count must be at least 1")
			}
			t, err := getTransport(cmd, baseURL)
			if err != nil {
				return err
			}
			ids, err := t.Generate(cmd.Context(), scheme, count)
			if err != nil {
				return err
			}
			for _, s := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
	addSchemeFlag(cmd)
	addRemoteFlag(cmd)
	cmd.Flags().IntP("count", "n", 1, "Number of identifiers")
	return cmd
}

// NewEncodeCommand constructs the `encode` command.
func NewEncodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode VALUE...",
		Short: "Render non-negative decimal integers in a scheme alphabet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iss, err := localIssuer(cmd)
			if err != nil {
				return err
			}
			for _, a := range args {
				v, ok := new(big.Int).SetString(a, 10)
				if !ok || v.Sign() < 0 {
					return fmt.Errorf("invalid value %q: want a non-negative decimal integer", a)
				}
				fmt.Fprintln(cmd.OutOrStdout(), iss.Encode(v))
			}
			return nil
		},
	}
	addSchemeFlag(cmd)
	return cmd
}

// NewDecodeCommand constructs the `decode` command.
func NewDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode ID...",
		Short: "Print the decimal value of identifiers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iss, err := localIssuer(cmd)
			if err != nil {
				return err
			}
			for _, a := range args {
				v, err := iss.Decode(a)
				if err != nil {
					return fmt.Errorf("%q: %w", a, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}
	addSchemeFlag(cmd)
	return cmd
}

// NewDescribeCommand constructs the `describe` command. It prints one JSON
// object per identifier and fails if any of them is invalid.
func NewDescribeCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe ID...",
		Short: "Split identifiers into timestamp, offset and readable form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, _ := cmd.Flags().GetString("scheme")
			var tz *int
			if cmd.Flags().Changed("tz") {
				v, _ := cmd.Flags().GetInt("tz")
				tz = &v
			}
			t, err := getTransport(cmd, baseURL)
			if err != nil {
				return err
			}
			invalid := 0
			for _, a := range args {
				d, err := t.Describe(cmd.Context(), scheme, a, tz)
				if err != nil {
					return err
				}
				if !d.Valid {
					invalid++
				}
				if err := printJSON(cmd, d); err != nil {
					return err
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d identifiers invalid", invalid, len(args))
			}
			return nil
		},
	}
	addSchemeFlag(cmd)
	addTZFlag(cmd)
	addRemoteFlag(cmd)
	return cmd
}

// NewSchemesCommand constructs the `schemes` command.
func NewSchemesCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List registered schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := getTransport(cmd, baseURL)
			if err != nil {
				return err
			}
			s, err := t.Schemes(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, s)
		},
	}
	addRemoteFlag(cmd)
	return cmd
}
