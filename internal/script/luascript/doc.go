// Package luascript runs Lua scripts against the native world.
//
// Groups, players, packets and identifiers are exposed as userdata with
// method tables. Group methods are taken verbatim from the bindings/group
// dispatch table: the engine only translates Lua stack positions into
// binding arguments and binding results back onto the stack. Argument errors
// reported by a binding are raised as Lua errors ("bad argument #n"); skipped
// calls simply return nothing.
//
// An Engine wraps a single Lua state and is not safe for concurrent use.
package luascript
