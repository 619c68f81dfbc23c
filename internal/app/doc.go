// Package app wires the bean registries, the JSON shadow coordinator and the
// built-in modules into a runnable application. It owns configuration,
// logging and the health/metrics endpoint, decoupled from any specific
// entrypoint like a CLI.
package app
