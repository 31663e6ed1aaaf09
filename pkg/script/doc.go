// Package script holds the command entries and queues that arguments belong to.
//
// A Script is an ordered list of command lines. Running it against a Queue turns
// every line into an Entry: the first token is the command, the remaining tokens
// become arguments owned by that entry. The queue carries the debug flag, the
// definitions provider and the diagnostic sink shared by its entries.
package script
