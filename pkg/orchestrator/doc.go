// Package orchestrator wires the variant -> processor -> export -> renderer
// pipeline behind a single Handle call, resolving themes along the way.
package orchestrator
