package action

// Type identifies one category of proposed action. The set is closed; an
// executor claims one or more types when it registers.
type Type string

const (
	TypeCategorizeTransaction Type = "categorize_transaction"
	TypeTagExpense            Type = "tag_expense"
	TypeUpdateCategoryBulk    Type = "update_category_bulk"
	TypeSendReminder          Type = "send_reminder"
	TypeFlagForReview         Type = "flag_for_review"
	TypeCreateBudgetAlert     Type = "create_budget_alert"
	TypeCancelSubscription    Type = "cancel_subscription"
	TypePayInvoice            Type = "pay_invoice"
	TypeRenegotiateVendor     Type = "renegotiate_vendor"
	TypeDisputeCharge         Type = "dispute_charge"
	TypeGenerateReport        Type = "generate_report"
	TypeChangePayroll         Type = "change_payroll"
	TypeModifyTaxFiling       Type = "modify_tax_filing"
	TypeAdjustPricing         Type = "adjust_pricing"
	TypeCustom                Type = "custom"
)

// DefaultApprovalLevels maps each action type to its default risk tier. Risk
// policy lives here as data: adding a new type means adding a row, not a
// branch. Reversible, low-blast-radius operations are green; operations that
// touch many records or send external communication are yellow; financially
// consequential but individually reversible operations are red; irreversible
// or legally sensitive operations are critical.
var DefaultApprovalLevels = map[Type]ApprovalLevel{
	TypeCategorizeTransaction: LevelGreen,
	TypeTagExpense:            LevelGreen,
	TypeGenerateReport:        LevelGreen,
	TypeUpdateCategoryBulk:    LevelYellow,
	TypeSendReminder:          LevelYellow,
	TypeFlagForReview:         LevelYellow,
	TypeCreateBudgetAlert:     LevelYellow,
	TypeCancelSubscription:    LevelRed,
	TypePayInvoice:            LevelRed,
	TypeRenegotiateVendor:     LevelRed,
	TypeDisputeCharge:         LevelRed,
	TypeAdjustPricing:         LevelRed,
	TypeCustom:                LevelRed,
	TypeChangePayroll:         LevelCritical,
	TypeModifyTaxFiling:       LevelCritical,
}

// DefaultLevel returns the default tier for the supplied type; unknown types
// default to red so they always reach a human.
func DefaultLevel(t Type) ApprovalLevel {
	if level, ok := DefaultApprovalLevels[t]; ok {
		return level
	}
	return LevelRed
}
