// Package actiongate manages the lifecycle of proposed remediation actions
// for financial-audit automation: a tiered approval gate decides which
// proposals may run, an execution engine runs approved actions through
// capability-matched executors (dry-run by default), and reversible actions
// can be rolled back from their recorded results.
//
// Basic usage:
//
//	srv := actiongate.New()
//	auto, held, err := srv.Propose(ctx, anAction)
//	results, err := srv.Execute(ctx, auto, executor.WithDryRun(false))
package actiongate
