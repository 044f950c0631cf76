// Package vector provides the collaborators that rewrite VEX/EVEX rows for
// the opcode transformer: an in-process passthrough and a gRPC client for an
// external rewriter service, plus the server-side registration of that
// service. WithPolicy adds per-call timeouts and retries to either.
package vector
