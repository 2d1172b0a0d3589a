// Package client provides the `seqid` command-line commands.
//
// Identifier commands run against an in-process registry by default, which
// is enough for encoding, decoding and one-off generation. Pass --remote to
// use a running server's HTTP API instead, so that generated identifiers
// share the server's sequence state.
//
// # Address configuration
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. When using the standalone binary, it
// defaults to http://127.0.0.1:8080 (SEQID_HTTP). The gRPC address used by
// `health` is read from SEQID_GRPC (default 127.0.0.1:50051).
//
// Usage
//
//	seqid generate --scheme milli36 --count 3
//	seqid generate --remote
//
//	seqid encode --scheme micro26 1734422400240900
//	seqid decode --scheme milli36 v37mjt0ni87
//	seqid describe --scheme milli36 --tz 540 v37mjt0ni87
//
//	seqid readable --tz 540 1734422400240900
//	seqid parse 20241217_170000240900+09
//
//	seqid schemes
//	seqid health --service seqid
package client
