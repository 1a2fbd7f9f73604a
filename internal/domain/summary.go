package domain

import "github.com/shopspring/decimal"

// LedgerSummary is the derived view of a ledger shown to the worker
type LedgerSummary struct {
	// Revision orders snapshots of one ledger; it is set by the owner of the ledger, not by Summary
	Revision           uint64                              `json:"revision"`
	MonthlyGoal        decimal.Decimal                     `json:"monthlyGoal"`
	MonthlyEarnings    decimal.Decimal                     `json:"monthlyEarnings"`
	TotalExpenses      decimal.Decimal                     `json:"totalExpenses"`
	NetEarnings        decimal.Decimal                     `json:"netEarnings"`
	ProgressPercentage decimal.Decimal                     `json:"progressPercentage"`
	RemainingToGoal    decimal.Decimal                     `json:"remainingToGoal"`
	GoalReached        bool                                `json:"goalReached"`
	PlatformEarnings   map[Platform]decimal.Decimal        `json:"platformEarnings"`
	Expenses           map[ExpenseCategory]decimal.Decimal `json:"expenses"`
	OtherExpenseNote   string                              `json:"otherExpenseNote,omitempty"`
}

// PlatformShare is one slice of the earnings distribution
type PlatformShare struct {
	Platform Platform        `json:"platform"`
	Amount   decimal.Decimal `json:"amount"`
	// Share is the percentage of MonthlyEarnings, zero when nothing has been earned
	Share decimal.Decimal `json:"share"`
}

// Summary computes every derived figure at once
func (l *EarningsLedger) Summary() LedgerSummary {
	return LedgerSummary{
		MonthlyGoal:        l.monthlyGoal,
		MonthlyEarnings:    l.monthlyEarnings,
		TotalExpenses:      l.TotalExpenses(),
		NetEarnings:        l.NetEarnings(),
		ProgressPercentage: l.ProgressPercentage(),
		RemainingToGoal:    l.RemainingToGoal(),
		GoalReached:        l.GoalReached(),
		PlatformEarnings:   l.PlatformEarnings(),
		Expenses:           l.Expenses(),
		OtherExpenseNote:   l.otherExpenseNote,
	}
}

// Distribution returns one entry per platform in display order; unset platforms count as zero
func (l *EarningsLedger) Distribution() []PlatformShare {
	shares := make([]PlatformShare, len(Platforms))
	for i, p := range Platforms {
		amount := l.platformEarnings[p]
		share := decimal.Zero
		if l.monthlyEarnings.IsPositive() {
			share = amount.Mul(hundred).Div(l.monthlyEarnings)
		}
		shares[i] = PlatformShare{Platform: p, Amount: amount, Share: share}
	}
	return shares
}
