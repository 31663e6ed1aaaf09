/*
Package args turns raw command lines into typed, coercible arguments.

# Tokenizing

Tokenize splits a line on spaces while honoring single and double quotes. The
quoting rule is asymmetric: a quote opens only at the start of the line or after
a space, and closes only before a space or the end of the line. Anything else is
literal text, so apostrophes inside words survive untouched:

	Tokenize(`narrate "hello world" it's`) // ["narrate", "hello world", "it's"]

# Arguments

Each token becomes an Argument with an optional prefix (text before the first
colon) and a value. Typed getters come in two flavors: ParseX returns an error,
AsX never fails and reports the problem to the diagnostic sink instead, returning
the zero value. Scripts keep running on a malformed argument.

IsDecimal and IsInteger classify tokens without parsing them.
*/
package args
