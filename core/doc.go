// Package core defines the shared vocabulary of the graphmesh framework:
// the immutable Message value exchanged between nodes, the Executor contract
// every node kind implements, per-run state (transcript, current node, step
// counter) and the result/termination types returned to callers. Higher level
// packages (agent, graph, tool, loader) depend on core; core depends on
// nothing but the standard library and the uuid generator.
package core
