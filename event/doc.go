// Package event routes asynchronous engine callbacks to typed handlers.
//
// It has three pieces. The handler hierarchy defines one payload type and
// one handler interface per event category, in two shapes: Notify
// handlers return nothing, Decide handlers return an accept/deny decision
// consumed synchronously by the native call site. The Registry maps a
// stable string identifier to at most one live handler. The Bridge is the
// code path the engine's worker goroutines call into: it serializes
// against the facade's foreground calls, resolves the subscriber, copies
// the borrowed payload into owned values, invokes the handler, and
// guarantees that no panic escapes back toward the native stack.
//
// Serialization contract: the Bridge holds the shared execution lock for
// the full duration of a trigger, so at most one of {a foreground facade
// call, any dispatch invocation} executes at a time. Dispatches for
// different subscriber ids are therefore strictly serialized as well. A
// slow trigger stalls both other event delivery and foreground traffic;
// handlers are expected to do minimal work and hand anything non-trivial
// to another goroutine (see the forward package for the canonical
// pattern). A handler must never call a facade operation that needs the
// same lock it is already holding.
package event
