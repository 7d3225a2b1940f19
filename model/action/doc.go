// Package action defines the data model of the proposed-action lifecycle:
// the ProposedAction record, its forward-only status machine, the ordered
// approval tiers, the closed action-type set with its declarative risk-policy
// table, and the immutable execution Result.
package action
