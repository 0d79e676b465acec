// Package guard converts manually-owned native handles into scoped,
// exactly-once-released resources.
//
// Every handle the engine hands out must be paired with exactly one call
// to its destroy function. A Guard owns one handle and guarantees that
// pairing: Release is idempotent, safe on a null handle, and never
// returns an error (secondary failures during cleanup are logged and
// swallowed so they cannot mask the failure that triggered the cleanup).
// Detach transfers raw ownership out for handles that must outlive the
// acquiring scope.
//
// Guards are not safe for concurrent use; each guard must stay confined
// to one logical flow.
package guard
