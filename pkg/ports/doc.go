/*
Package ports defines the driven ports (interfaces) of the scripting core.

These interfaces decouple the core from storage and hosting concerns, so the same
argument and context code runs against in-memory definitions, a shared Redis
keyspace, or scripts kept in a document repository.

# Key Interfaces

  - DefinitionProvider: named-variable lookup used during evaluation.
  - ScriptLoader: retrieves script documents by name.
*/
package ports
