// Package group exposes native group operations to embedded scripts.
//
// Each binding is an adapter with the same shape: it reads positional script
// arguments from a Context, calls one native world.Group operation, and
// returns a Result describing what the script should receive. Bindings hold
// no state between calls and never keep a handle past their own invocation.
//
// Failures come in two flavours. A handle argument (player, packet) that
// cannot be resolved yields a Skip result: nothing is returned and nothing is
// raised. A scalar argument of the wrong shape (boolean, string, unsigned)
// yields an argument error that the script bridge raises to the caller. In
// both cases the native group is left untouched.
package group
