/*
Package diag defines the diagnostic sink used by the scripting core.

A Sink receives fire-and-forget messages: Log for debug output, Error for
recoverable faults (bad coercions, faulty trait plugins). Implementations must
never block the caller or panic back into it.

The process default sink discards everything until SetDefault installs one,
typically a slog-backed sink built with NewSlogSink.
*/
package diag
