package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// EarningsLedger holds one period's platform earnings, expenses and goal.
// MonthlyEarnings is kept equal to the sum of platform earnings after every mutation.
// It is not safe for concurrent use.
type EarningsLedger struct {
	monthlyGoal      decimal.Decimal
	monthlyEarnings  decimal.Decimal
	platformEarnings map[Platform]decimal.Decimal
	expenses         map[ExpenseCategory]decimal.Decimal
	otherExpenseNote string
	strict           bool
}

// LedgerOption configures a ledger
type LedgerOption func(*EarningsLedger)

// WithStrictAmounts makes the amount setters reject unparsable or negative
// input instead of storing zero
func WithStrictAmounts() LedgerOption {
	return func(l *EarningsLedger) {
		l.strict = true
	}
}

// NewEarningsLedger creates an empty ledger with the default goal
func NewEarningsLedger(opts ...LedgerOption) *EarningsLedger {
	l := &EarningsLedger{
		monthlyGoal:      DefaultMonthlyGoal,
		monthlyEarnings:  decimal.Zero,
		platformEarnings: make(map[Platform]decimal.Decimal),
		expenses:         make(map[ExpenseCategory]decimal.Decimal),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Strict reports whether the ledger rejects bad amounts
func (l *EarningsLedger) Strict() bool {
	return l.strict
}

// SetPlatformEarning records the earnings for a platform.
// In lenient mode bad input is stored as zero and the returned error is always nil
// unless the platform itself is unknown.
func (l *EarningsLedger) SetPlatformEarning(platform Platform, raw string) error {
	if !platform.IsValid() {
		return ErrUnknownPlatform
	}
	amount, err := l.parse(raw)
	if err != nil {
		return err
	}

	l.platformEarnings[platform] = amount
	l.recomputeMonthlyEarnings()
	return nil
}

// SetExpense records the amount spent in a category. It never touches MonthlyEarnings.
func (l *EarningsLedger) SetExpense(category ExpenseCategory, raw string) error {
	if !category.IsValid() {
		return ErrUnknownExpenseCategory
	}
	amount, err := l.parse(raw)
	if err != nil {
		return err
	}

	l.expenses[category] = amount
	return nil
}

// SetMonthlyGoal applies raw as the new goal only when it parses to a strictly
// positive amount, and reports whether it did
func (l *EarningsLedger) SetMonthlyGoal(raw string) bool {
	goal, err := ParseAmount(raw)
	if err != nil || !goal.IsPositive() {
		return false
	}
	l.monthlyGoal = goal
	return true
}

// SetOtherExpenseNote stores the free-text note attached to the Other category
func (l *EarningsLedger) SetOtherExpenseNote(note string) error {
	if err := ValidateExpenseNote(note); err != nil {
		return err
	}
	l.otherExpenseNote = strings.TrimSpace(note)
	return nil
}

// ValidateExpenseNote checks a note against MaxExpenseNoteLength after trimming
func ValidateExpenseNote(note string) error {
	if utf8.RuneCountInString(strings.TrimSpace(note)) > MaxExpenseNoteLength {
		return ErrNoteTooLong
	}
	return nil
}

// MonthlyGoal returns the current goal
func (l *EarningsLedger) MonthlyGoal() decimal.Decimal {
	return l.monthlyGoal
}

// MonthlyEarnings returns the cached sum of all platform earnings
func (l *EarningsLedger) MonthlyEarnings() decimal.Decimal {
	return l.monthlyEarnings
}

// PlatformEarning returns the amount for a platform, zero when unset
func (l *EarningsLedger) PlatformEarning(platform Platform) decimal.Decimal {
	return l.platformEarnings[platform]
}

// Expense returns the amount for a category, zero when unset
func (l *EarningsLedger) Expense(category ExpenseCategory) decimal.Decimal {
	return l.expenses[category]
}

// PlatformEarnings returns a copy of the platforms that have been set
func (l *EarningsLedger) PlatformEarnings() map[Platform]decimal.Decimal {
	out := make(map[Platform]decimal.Decimal, len(l.platformEarnings))
	for k, v := range l.platformEarnings {
		out[k] = v
	}
	return out
}

// Expenses returns a copy of the categories that have been set
func (l *EarningsLedger) Expenses() map[ExpenseCategory]decimal.Decimal {
	out := make(map[ExpenseCategory]decimal.Decimal, len(l.expenses))
	for k, v := range l.expenses {
		out[k] = v
	}
	return out
}

// OtherExpenseNote returns the note attached to the Other category
func (l *EarningsLedger) OtherExpenseNote() string {
	return l.otherExpenseNote
}

// TotalExpenses sums every expense category
func (l *EarningsLedger) TotalExpenses() decimal.Decimal {
	return sumAmounts(l.expenses)
}

// NetEarnings is platform earnings minus expenses and may be negative
func (l *EarningsLedger) NetEarnings() decimal.Decimal {
	return sumAmounts(l.platformEarnings).Sub(l.TotalExpenses())
}

// ProgressPercentage is MonthlyEarnings as a percentage of the goal.
// The goal is always positive so this never divides by zero; it can exceed 100.
func (l *EarningsLedger) ProgressPercentage() decimal.Decimal {
	return l.monthlyEarnings.Mul(hundred).Div(l.monthlyGoal)
}

// RemainingToGoal is how much is still needed to reach the goal, never below zero
func (l *EarningsLedger) RemainingToGoal() decimal.Decimal {
	remaining := l.monthlyGoal.Sub(l.monthlyEarnings)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// GoalReached reports whether earnings have met the goal
func (l *EarningsLedger) GoalReached() bool {
	return l.monthlyEarnings.GreaterThanOrEqual(l.monthlyGoal)
}

// Equal compares the logical state of two ledgers, ignoring options
func (l *EarningsLedger) Equal(other *EarningsLedger) bool {
	if other == nil {
		return false
	}
	if !l.monthlyGoal.Equal(other.monthlyGoal) ||
		!l.monthlyEarnings.Equal(other.monthlyEarnings) ||
		l.otherExpenseNote != other.otherExpenseNote {
		return false
	}
	return amountsEqual(l.platformEarnings, other.platformEarnings) &&
		amountsEqual(l.expenses, other.expenses)
}

func (l *EarningsLedger) parse(raw string) (decimal.Decimal, error) {
	if l.strict {
		return ParseAmount(raw)
	}
	return CoerceAmount(raw), nil
}

func (l *EarningsLedger) recomputeMonthlyEarnings() {
	l.monthlyEarnings = sumAmounts(l.platformEarnings)
}

func amountsEqual[K comparable](a, b map[K]decimal.Decimal) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}
