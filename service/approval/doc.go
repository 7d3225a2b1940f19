// Package approval implements the human-in-the-loop approval gate. It
// classifies proposed actions by risk tier, auto-approves the low-risk ones
// and holds the rest until an explicit decision is recorded, maintaining an
// append-only decision ledger as the audit trail.
package approval
