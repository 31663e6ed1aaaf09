/*
Package quill is the tokenization and trait-description core of an embedded
text scripting engine.

It turns raw command lines into typed, coercible arguments and turns host
objects into a canonical textual description through an extensible registry of
trait plugins.

# Arguments

A command line is split into tokens with quote-aware rules and each token is
wrapped into an argument bound to its command entry:

	entry, err := script.NewEntry(queue, `spawn "creeper boss" quantity:3`)
	qty := entry.Arg("quantity").AsInt() // 3, or 0 plus a diagnostic

# Descriptions

Trait descriptors are registered per host type during start-up. The registry
freezes on first use and describes instances as "[id=content;...]":

	traits.MustRegister(traits.For("name", hasName, nameHandle), traits.TypeOf[*Player]())
	traits.Describe(player) // "[name=Steve]"

# Engine

Engine bundles a registry populated from a record manifest, a definitions
provider (memory or Redis) and a script loader (Loam) for the CLI, HTTP and MCP
front-ends.
*/
package quill
