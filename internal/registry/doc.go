// Package registry provides the bean registry: a thread-safe, in-memory
// directory mapping bean names to manageable objects.
//
// A Registry stores each bean together with the metadata derived when it
// was registered, and dispatches attribute reads, attribute writes and
// operation invocations to it by name. Beans that are not dynamic are
// checked for compliance up front, so that every member listed in their
// metadata can be reached by reflection afterwards.
//
// The Server interface is what clients program against. Registry is its
// only storage-backed implementation; other implementations (such as the
// dual-registry coordinator) wrap one.
package registry
