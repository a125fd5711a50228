// Package memory is an in-process implementation of the native world surface.
//
// It follows the classic group rules: parties hold five members, raids hold
// forty split into eight sub-groups of five, the leader is replaced by the
// first remaining member when removed, and a non-battleground group with
// fewer than two members left is disbanded.
//
// A World is not safe for concurrent use; script bindings run synchronously on
// a single goroutine.
package memory
