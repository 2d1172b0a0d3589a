package serverrun

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	cfgpkg "github.com/rzbill/seqid/internal/config"
	"github.com/rzbill/seqid/internal/runtime"
	grpcserver "github.com/rzbill/seqid/internal/server/grpc"
	httpserver "github.com/rzbill/seqid/internal/server/http"
	pebblestore "github.com/rzbill/seqid/internal/storage/pebble"
	logpkg "github.com/rzbill/seqid/pkg/log"
)

type Options struct {
	Config cfgpkg.Config
	Fsync  pebblestore.FsyncMode
	// Logger overrides the one built from Config.Log.
	Logger logpkg.Logger
	// HTTPListener and GRPCListener, when set, are used instead of binding
	// Config.HTTPAddr and Config.GRPCAddr.
	HTTPListener net.Listener
	GRPCListener net.Listener
}

// Run opens the runtime, serves HTTP and gRPC, records checkpoints, and
// blocks until ctx is cancelled or SIGINT/SIGTERM arrives. An empty
// GRPCAddr with no GRPCListener disables gRPC.
func Run(ctx context.Context, opts Options) error {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		l, err := logpkg.ApplyConfig(&cfg.Log)
		if err != nil {
			return err
		}
		logger = l
	}
	restore := logpkg.RedirectStdLog(logger)
	defer restore()

	logger.Info("starting seqid",
		logpkg.Str("http", cfg.HTTPAddr),
		logpkg.Str("grpc", cfg.GRPCAddr),
		logpkg.Str("scheme", cfg.DefaultScheme),
		logpkg.Int("tz_offset_minutes", cfg.TZOffsetMinutes),
		logpkg.Bool("checkpoint", cfg.Checkpoint.Enabled))

	rt, err := runtime.Open(sctx, runtime.Options{Config: cfg, Logger: logger, Fsync: opts.Fsync})
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Error("runtime close failed", logpkg.Err(err))
		}
	}()

	hsrv := httpserver.New(rt, logger)
	g, gctx := errgroup.WithContext(sctx)
	g.Go(func() error {
		if opts.HTTPListener != nil {
			return hsrv.Serve(gctx, opts.HTTPListener)
		}
		return hsrv.ListenAndServe(gctx, cfg.HTTPAddr)
	})
	if opts.GRPCListener != nil || cfg.GRPCAddr != "" {
		gsrv := grpcserver.New(rt, logger)
		g.Go(func() error {
			if opts.GRPCListener != nil {
				return gsrv.Serve(gctx, opts.GRPCListener)
			}
			return gsrv.ListenAndServe(gctx, cfg.GRPCAddr)
		})
	}
	g.Go(func() error { return rt.RunCheckpoints(gctx) })

	err = g.Wait()
	logger.Info("stopped")
	return err
}
