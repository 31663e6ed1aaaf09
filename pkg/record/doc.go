// Package record provides generic host objects whose traits come from a manifest.
//
// A Record is a kind, an id and a bag of fields. A Manifest lists, per kind, which
// fields are exposed as properties and when. Registering a manifest turns every
// entry into a traits.Descriptor keyed by the record kind, so records of different
// kinds are described independently even though they share one Go type.
package record
