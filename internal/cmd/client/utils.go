package client

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	transports "github.com/rzbill/seqid/internal/cmd/client/transports"
	cfgpkg "github.com/rzbill/seqid/internal/config"
	"github.com/rzbill/seqid/pkg/id"
)

// BaseURLFunc provides the base HTTP API URL (e.g., from env or flag).
type BaseURLFunc func() string

// grpcAddrFromEnv returns the gRPC server address from SEQID_GRPC or a default.
func grpcAddrFromEnv() string {
	if addr := os.Getenv("SEQID_GRPC"); addr != "" {
		return addr
	}
	return "127.0.0.1:50051"
}

// dialGRPCContext dials the seqid gRPC endpoint with insecure transport for local/dev.
func dialGRPCContext(_ context.Context) (*grpc.ClientConn, error) {
	return grpc.NewClient(grpcAddrFromEnv(), grpc.WithTransportCredentials(insecure.NewCredentials()))
}

// localConfig is the default config overlaid with SEQID_* and, when set,
// the --tz flag.
func localConfig(cmd *cobra.Command) cfgpkg.Config {
	cfg := cfgpkg.Default()
	cfgpkg.FromEnv(&cfg)
	if f := cmd.Flags().Lookup("tz"); f != nil && f.Changed {
		cfg.TZOffsetMinutes, _ = cmd.Flags().GetInt("tz")
	}
	return cfg
}

func localRegistry(cmd *cobra.Command) (*id.Registry, error) {
	cfg := localConfig(cmd)
	return id.NewRegistry(id.WithOffsetMinutes(cfg.TZOffsetMinutes), id.WithDefaultScheme(cfg.DefaultScheme))
}

// localIssuer looks up --scheme, or the default scheme when it is empty.
func localIssuer(cmd *cobra.Command) (*id.Issuer, error) {
	reg, err := localRegistry(cmd)
	if err != nil {
		return nil, err
	}
	scheme, _ := cmd.Flags().GetString("scheme")
	if scheme == "" {
		return reg.Default(), nil
	}
	return reg.Lookup(scheme)
}

// getTransport returns the HTTP transport when --remote is set.
func getTransport(cmd *cobra.Command, baseURL BaseURLFunc) (transports.IDTransport, error) {
	if remote, _ := cmd.Flags().GetBool("remote"); remote {
		return transports.NewHTTPTransport(baseURL(), nil), nil
	}
	reg, err := localRegistry(cmd)
	if err != nil {
		return nil, err
	}
	return transports.NewLocalTransport(reg), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	return json.NewEncoder(cmd.OutOrStdout()).Encode(v)
}

func addSchemeFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("scheme", "s", "", "Scheme name (default from SEQID_DEFAULT_SCHEME or milli36)")
}

func addTZFlag(cmd *cobra.Command) {
	cmd.Flags().Int("tz", 0, "Timezone offset in minutes for readable output (default from SEQID_TZ_OFFSET_MINUTES)")
}

func addRemoteFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("remote", false, "Use the running server's HTTP API instead of an in-process registry")
}
