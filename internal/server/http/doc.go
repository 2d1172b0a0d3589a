// Package httpserver is seqid's HTTP/JSON gateway: a chi router with
// request IDs, panic recovery, CORS and Prometheus instrumentation, served
// over HTTP/1.1 and h2c.
//
// Routes:
//
//	GET  /ping
//	GET  /v1/healthz
//	GET  /v1/schemes
//	POST /v1/ids/{scheme}/generate?count=N
//	GET  /v1/ids/{scheme}/encode?value=N
//	GET  /v1/ids/{scheme}/decode/{id}
//	GET  /v1/ids/{scheme}/describe/{id}?tz=
//	GET  /v1/readable?ts=&tz=
//	GET  /v1/readable/parse?s=
//	GET  /metrics
//
// Errors are JSON {"error": ..., "code": ...}; unknown schemes are 404.
package httpserver
