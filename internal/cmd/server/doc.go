// Package serverrun is the shared entrypoint used by `seqid server start`:
// it opens the runtime and runs the HTTP gateway, the gRPC health server
// and the checkpoint recorder until shutdown.
//
// Example:
//
//	cfg := config.Default()
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = serverrun.Run(ctx, serverrun.Options{Config: cfg})
package serverrun
