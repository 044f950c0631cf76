// Package opcode rewrites rows of an x86 instruction reference table into
// compact encoding strings. Each row is classified first (vector-encoded,
// dropped, or a plain opcode row), then plain rows run through a fixed,
// ordered chain of rules. Vector-encoded rows are handed to a VectorRewriter
// supplied by the caller.
package opcode
