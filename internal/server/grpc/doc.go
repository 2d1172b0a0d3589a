// Package grpcserver serves the standard grpc.health.v1 service (and
// reflection) for seqid. Status follows runtime.CheckHealth and is
// reported for "" and "seqid".
package grpcserver
