package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// LedgerRecord is the flat persisted form of a ledger.
// On the wire amounts are JSON numbers under the field names below.
type LedgerRecord struct {
	MonthlyGoal      decimal.Decimal
	MonthlyEarnings  decimal.Decimal
	PlatformEarnings map[Platform]decimal.Decimal
	Expenses         map[ExpenseCategory]decimal.Decimal
	OtherExpenseNote string
}

// BlobStore is the key-value boundary a ledger is persisted through.
// The blob is opaque to the store.
type BlobStore interface {
	// Get returns found=false with a nil error when nothing is stored under key
	Get(ctx context.Context, key string) (blob []byte, found bool, err error)
	Set(ctx context.Context, key string, blob []byte) error
}

type ledgerRecordJSON struct {
	MonthlyGoal      json.Number            `json:"monthlyGoal"`
	MonthlyEarnings  json.Number            `json:"monthlyEarnings"`
	PlatformEarnings map[string]json.Number `json:"platformEarnings"`
	Expenses         map[string]json.Number `json:"expenses"`
	OtherExpenseNote string                 `json:"otherExpenseNote,omitempty"`
}

// Serialize snapshots the ledger into a record
func (l *EarningsLedger) Serialize() LedgerRecord {
	return LedgerRecord{
		MonthlyGoal:      l.monthlyGoal,
		MonthlyEarnings:  l.monthlyEarnings,
		PlatformEarnings: l.PlatformEarnings(),
		Expenses:         l.Expenses(),
		OtherExpenseNote: l.otherExpenseNote,
	}
}

// Deserialize rebuilds a ledger from a record. Missing or non-positive goals fall
// back to DefaultMonthlyGoal, negative amounts become zero, unknown platforms and
// categories are dropped, and MonthlyEarnings is recomputed from the platforms.
func Deserialize(rec LedgerRecord, opts ...LedgerOption) *EarningsLedger {
	l := NewEarningsLedger(opts...)

	if rec.MonthlyGoal.IsPositive() {
		l.monthlyGoal = rec.MonthlyGoal
	}
	for p, amount := range rec.PlatformEarnings {
		if p.IsValid() {
			l.platformEarnings[p] = nonNegative(amount)
		}
	}
	for c, amount := range rec.Expenses {
		if c.IsValid() {
			l.expenses[c] = nonNegative(amount)
		}
	}
	l.otherExpenseNote = rec.OtherExpenseNote
	l.recomputeMonthlyEarnings()

	return l
}

// Marshal encodes the record as the storage blob
func (r LedgerRecord) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// MarshalJSON writes amounts as plain JSON numbers
func (r LedgerRecord) MarshalJSON() ([]byte, error) {
	out := ledgerRecordJSON{
		MonthlyGoal:      json.Number(r.MonthlyGoal.String()),
		MonthlyEarnings:  json.Number(r.MonthlyEarnings.String()),
		PlatformEarnings: make(map[string]json.Number, len(r.PlatformEarnings)),
		Expenses:         make(map[string]json.Number, len(r.Expenses)),
		OtherExpenseNote: r.OtherExpenseNote,
	}
	for p, amount := range r.PlatformEarnings {
		out.PlatformEarnings[string(p)] = json.Number(amount.String())
	}
	for c, amount := range r.Expenses {
		out.Expenses[string(c)] = json.Number(amount.String())
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a blob leniently. The blob has to be a JSON object;
// any leaf inside it that is not a number or numeric string decodes as zero.
func (r *LedgerRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if fields == nil {
		return fmt.Errorf("%w: not an object", ErrCorruptRecord)
	}

	rec := LedgerRecord{
		MonthlyGoal:      coerceLeaf(fields["monthlyGoal"]),
		MonthlyEarnings:  coerceLeaf(fields["monthlyEarnings"]),
		PlatformEarnings: make(map[Platform]decimal.Decimal),
		Expenses:         make(map[ExpenseCategory]decimal.Decimal),
	}
	for name, leaf := range coerceObject(fields["platformEarnings"]) {
		rec.PlatformEarnings[Platform(name)] = coerceLeaf(leaf)
	}
	for name, leaf := range coerceObject(fields["expenses"]) {
		rec.Expenses[ExpenseCategory(name)] = coerceLeaf(leaf)
	}
	if raw, ok := fields["otherExpenseNote"]; ok {
		// a non-string note is dropped
		_ = json.Unmarshal(raw, &rec.OtherExpenseNote)
	}

	*r = rec
	return nil
}

// UnmarshalRecord decodes a storage blob into a record
func UnmarshalRecord(blob []byte) (LedgerRecord, error) {
	var rec LedgerRecord
	if len(bytes.TrimSpace(blob)) == 0 {
		return rec, fmt.Errorf("%w: empty blob", ErrCorruptRecord)
	}
	if err := rec.UnmarshalJSON(blob); err != nil {
		return LedgerRecord{}, err
	}
	return rec, nil
}

func coerceLeaf(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.Zero
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero
		}
		return CoerceAmount(s)
	}
	return CoerceAmount(string(raw))
}

func coerceObject(raw json.RawMessage) map[string]json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
