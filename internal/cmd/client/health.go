package client

import (
	"fmt"

	"github.com/spf13/cobra"

	transports "github.com/rzbill/seqid/internal/cmd/client/transports"
)

// NewHealthCommand constructs the `health` command, which queries the gRPC
// health service at SEQID_GRPC.
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health over gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, _ := cmd.Flags().GetString("service")
			st, err := transports.NewGrpcHealth(dialGRPCContext).Check(cmd.Context(), service)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), st)
			if st != "SERVING" {
				return fmt.Errorf("server is %s", st)
			}
			return nil
		},
	}
	cmd.Flags().String("service", "", "Health service name (\"\" or seqid)")
	return cmd
}
