// Package executor implements the execution engine of the proposed-action
// pipeline. The engine routes approved actions to capability-matched
// executors, enforces a per-run cap, converts every failure mode into an
// explicit result, and accumulates an immutable execution log that later
// rollback calls consult.
package executor
