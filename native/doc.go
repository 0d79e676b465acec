// Package native declares the surface of the underlying IEC 61850/MMS
// protocol engine as consumed by the rest of the module.
//
// The engine is a collaborator, not part of this module: it owns every
// resource behind a Handle, requires explicit create/destroy pairing,
// returns (result, error-code) pairs from synchronous operations, and
// delivers asynchronous events by invoking registered callbacks from its
// own worker goroutines. Everything above this package reaches the engine
// exclusively through the Engine interface so that tests can substitute a
// scriptable fake and so that raw error codes and unguarded handles never
// leak past the guard/facade boundary.
package native
