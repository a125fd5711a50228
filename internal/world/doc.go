// Package world declares the native game-server surface that script bindings
// delegate to.
//
// The bindings borrow these handles for the duration of a single call; they
// never create, store, or destroy them. Concrete implementations live
// elsewhere (see the memory package for the in-process reference world).
package world
