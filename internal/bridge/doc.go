// Package bridge keeps a primary bean registry and a secondary registry of
// JSON shadows consistent.
//
// # Purpose
//
// The Coordinator stands in front of the primary registry and implements
// the same registry.Server interface. Every registration passing through it
// is checked against an eligibility Policy; eligible beans get a JSON shadow
// (see package shadow) registered on the secondary registry under the same
// name. Unregistration tears down both sides.
//
// # Consistency
//
// The coordinator owns the association set: the names that currently have
// a shadow. A name is in the set exactly when its shadow is registered on
// the secondary registry through the coordinator, so unregistration knows
// whether a shadow must be removed without asking the secondary registry.
//
// Mutations reach the primary registry before the secondary one. A failure
// on the shadow side never rolls back the primary registration; it is
// reported as a *RegistrationError next to the valid registry.Instance.
//
// # Concurrency Model
//
//   - Register and Unregister of the same name are serialized by a keyed
//     lock. The requested name is locked first and the realized name second
//     when they differ.
//   - Different names proceed concurrently; the registries are expected to
//     be safe for concurrent use.
//   - The association set has its own mutex, so Shadowed never waits for an
//     in-flight registration.
package bridge
