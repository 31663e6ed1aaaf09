/*
Package observability exposes Prometheus metrics for the quill core.

Metrics holds its own registry so tests and embedders can create independent
instances. It plugs into the core in three places: as a diag.Sink wrapper that
counts diagnostics, as a traits.Observer that counts faults and descriptions, and
through ObserveTokenize for tokenizer calls made by the HTTP and MCP adapters.
*/
package observability
