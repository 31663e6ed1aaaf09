/*
Package traits describes host objects through pluggable trait descriptors.

A Descriptor pairs a predicate (does this trait apply to the instance?) with a
factory that attaches a Handle to the instance. Descriptors are registered per
TypeKey during start-up; the table is frozen at the first lookup and is read
without locks afterwards.

Describe assembles the canonical description of an instance:

	[id=content;id=content]

Fragments appear in registration order. A ';' inside content is replaced by
Placeholder so the format stays unambiguous. When no trait applies the
description is the empty string.

A descriptor that panics or fails is reported to the diagnostic sink and skipped;
the other descriptors still contribute.
*/
package traits
