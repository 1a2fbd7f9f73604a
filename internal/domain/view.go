package domain

import "github.com/shopspring/decimal"

// LedgerView is the display form of a LedgerSummary, with amounts fixed to two
// decimal places. REST responses and websocket payloads share it.
type LedgerView struct {
	Revision           uint64            `json:"revision"`
	MonthlyGoal        string            `json:"monthlyGoal"`
	MonthlyEarnings    string            `json:"monthlyEarnings"`
	TotalExpenses      string            `json:"totalExpenses"`
	NetEarnings        string            `json:"netEarnings"`
	NetPositive        bool              `json:"netPositive"`
	ProgressPercentage string            `json:"progressPercentage"`
	RemainingToGoal    string            `json:"remainingToGoal"`
	GoalReached        bool              `json:"goalReached"`
	PlatformEarnings   map[string]string `json:"platformEarnings"`
	Expenses           map[string]string `json:"expenses"`
	OtherExpenseNote   string            `json:"otherExpenseNote,omitempty"`
}

// View formats the summary for display
func (s LedgerSummary) View() LedgerView {
	return LedgerView{
		Revision:           s.Revision,
		MonthlyGoal:        s.MonthlyGoal.StringFixed(2),
		MonthlyEarnings:    s.MonthlyEarnings.StringFixed(2),
		TotalExpenses:      s.TotalExpenses.StringFixed(2),
		NetEarnings:        s.NetEarnings.StringFixed(2),
		NetPositive:        !s.NetEarnings.IsNegative(),
		ProgressPercentage: s.ProgressPercentage.StringFixed(2),
		RemainingToGoal:    s.RemainingToGoal.StringFixed(2),
		GoalReached:        s.GoalReached,
		PlatformEarnings:   fixedAmounts(s.PlatformEarnings),
		Expenses:           fixedAmounts(s.Expenses),
		OtherExpenseNote:   s.OtherExpenseNote,
	}
}

func fixedAmounts[K ~string](m map[K]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[string(k)] = v.StringFixed(2)
	}
	return out
}
