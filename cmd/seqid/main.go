package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	clientcmd "github.com/rzbill/seqid/internal/cmd/client"
	serverrun "github.com/rzbill/seqid/internal/cmd/server"
	cfgpkg "github.com/rzbill/seqid/internal/config"
	pebblestore "github.com/rzbill/seqid/internal/storage/pebble"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "seqid",
		Short:        "Time-ordered identifier toolkit",
		Long:         "seqid issues, encodes and inspects time-ordered identifiers, and serves them over HTTP.",
		SilenceUsage: true,
	}
	clientcmd.AddCommands(rootCmd, apiURL)
	rootCmd.AddCommand(newServerCommand())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newServerCommand() *cobra.Command {
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	startCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the seqid server (HTTP and gRPC)",
		Aliases: []string{"run"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, mode, err := serverConfig(cmd)
			if err != nil {
				return err
			}
			if err := serverrun.Run(cmd.Context(), serverrun.Options{Config: cfg, Fsync: mode}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	f := startCmd.Flags()
	f.StringP("config", "c", os.Getenv("SEQID_CONFIG"), "Config file (.yaml, .toml or .json)")
	f.String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	f.String("http", "", "HTTP listen address (default :8080)")
	f.String("grpc", "", "gRPC listen address (default :50051)")
	f.String("scheme", "", "Default scheme")
	f.Int("tz", 0, "Timezone offset in minutes for readable output")
	f.String("fsync", "always", "Checkpoint store fsync mode: always|interval|never")
	f.Bool("no-checkpoint", false, "Disable the restart guard")
	f.String("log-level", "", "Log level: debug|info|warn|error")
	f.String("log-format", "", "Log format: text|json")
	serverCmd.AddCommand(startCmd)
	return serverCmd
}

// serverConfig layers defaults, the config file, SEQID_* variables and
// finally explicit flags.
func serverConfig(cmd *cobra.Command) (cfgpkg.Config, pebblestore.FsyncMode, error) {
	f := cmd.Flags()
	cfg := cfgpkg.Default()
	if path, _ := f.GetString("config"); path != "" {
		loaded, err := cfgpkg.Load(path)
		if err != nil {
			return cfg, 0, err
		}
		cfg = loaded
	}
	cfgpkg.FromEnv(&cfg)

	if f.Changed("data-dir") {
		cfg.DataDir, _ = f.GetString("data-dir")
	}
	if f.Changed("http") {
		cfg.HTTPAddr, _ = f.GetString("http")
	}
	if f.Changed("grpc") {
		cfg.GRPCAddr, _ = f.GetString("grpc")
	}
	if f.Changed("scheme") {
		cfg.DefaultScheme, _ = f.GetString("scheme")
	}
	if f.Changed("tz") {
		cfg.TZOffsetMinutes, _ = f.GetInt("tz")
	}
	if off, _ := f.GetBool("no-checkpoint"); off {
		cfg.Checkpoint.Enabled = false
	}
	if f.Changed("log-level") {
		cfg.Log.Level, _ = f.GetString("log-level")
	}
	if f.Changed("log-format") {
		cfg.Log.Format, _ = f.GetString("log-format")
	}

	fsync, _ := f.GetString("fsync")
	mode := pebblestore.ParseFsyncMode(fsync)
	if mode == pebblestore.FsyncModeUnspecified {
		return cfg, mode, fmt.Errorf("invalid --fsync %q; use always|interval|never", fsync)
	}
	return cfg, mode, cfg.Validate()
}

func apiURL() string {
	if v := os.Getenv("SEQID_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}
