package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the seqid client.
// It registers every identifier command and health.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "seqid",
		Short: "seqid client commands",
	}
	AddCommands(root, baseURL)
	return root
}

// AddCommands attaches the client commands to root.
func AddCommands(root *cobra.Command, baseURL BaseURLFunc) {
	root.AddCommand(
		NewGenerateCommand(baseURL),
		NewEncodeCommand(),
		NewDecodeCommand(),
		NewDescribeCommand(baseURL),
		NewSchemesCommand(baseURL),
		NewReadableCommand(),
		NewParseCommand(),
		NewHealthCommand(),
	)
}
