package action

// ApprovalLevel is an ordered risk tier controlling how much human oversight
// an action requires before it may execute.
type ApprovalLevel string

const (
	LevelGreen    ApprovalLevel = "green"    // auto-approve
	LevelYellow   ApprovalLevel = "yellow"   // auto-approve + notify
	LevelRed      ApprovalLevel = "red"      // explicit human approval
	LevelCritical ApprovalLevel = "critical" // multi-party approval
)

var levelRank = map[ApprovalLevel]int{
	LevelGreen:    0,
	LevelYellow:   1,
	LevelRed:      2,
	LevelCritical: 3,
}

// Rank returns the tier position, green < yellow < red < critical. Unknown
// levels rank as red so that a typo never widens autonomy.
func (l ApprovalLevel) Rank() int {
	if rank, ok := levelRank[l]; ok {
		return rank
	}
	return levelRank[LevelRed]
}

// RequiresHuman reports whether the tier is ineligible for auto-approval.
func (l ApprovalLevel) RequiresHuman() bool {
	return l.Rank() >= levelRank[LevelRed]
}

// IsValid reports whether l is one of the defined tiers.
func (l ApprovalLevel) IsValid() bool {
	_, ok := levelRank[l]
	return ok
}
