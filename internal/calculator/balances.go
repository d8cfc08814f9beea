package calculator

import (
	"iter"

	"github.com/shopspring/decimal"
)

// Expense represents one payment with the minimal information needed for balance calculations.
// Input is assumed to be validated: Payer is non-empty and Amount is positive.
type Expense struct {
	Payer  string
	Amount decimal.Decimal
	// Participants is the set of people sharing the expense.
	// Empty means everyone who appears anywhere in the expense list.
	Participants []string
}

// MemberBalance represents the balance information for one person.
type MemberBalance struct {
	MemberName string
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid  decimal.Decimal // Total amount paid across all expenses
	TotalOwed  decimal.Decimal // Total share of expenses this person consumed
}

// Balances maps people to signed net balances.
// Iteration follows the order in which people were first added, which the
// settlement matcher uses to break ties between equal amounts.
type Balances struct {
	people  []string
	amounts map[string]decimal.Decimal
}

// NewBalances returns an empty balance mapping.
func NewBalances() *Balances {
	return &Balances{amounts: make(map[string]decimal.Decimal)}
}

// Add adds delta to person's balance, registering the person on first use.
func (b *Balances) Add(person string, delta decimal.Decimal) {
	current, ok := b.amounts[person]
	if !ok {
		b.people = append(b.people, person)
	}
	b.amounts[person] = current.Add(delta)
}

// Get returns person's balance, zero when unknown.
func (b *Balances) Get(person string) decimal.Decimal {
	return b.amounts[person]
}

// Has reports whether person is part of the mapping.
func (b *Balances) Has(person string) bool {
	_, ok := b.amounts[person]
	return ok
}

// Len returns the number of people.
func (b *Balances) Len() int {
	return len(b.people)
}

// People returns a copy of the people in first-appearance order.
func (b *Balances) People() []string {
	out := make([]string, len(b.people))
	copy(out, b.people)
	return out
}

// All iterates people and balances in first-appearance order.
func (b *Balances) All() iter.Seq2[string, decimal.Decimal] {
	return func(yield func(string, decimal.Decimal) bool) {
		for _, p := range b.people {
			if !yield(p, b.amounts[p]) {
				return
			}
		}
	}
}

// Sum returns the sum of all balances.
func (b *Balances) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, amount := range b.amounts {
		sum = sum.Add(amount)
	}
	return sum
}

// ComputeBalances reduces expenses to per-person net balances.
//
// Algorithm:
//   - Collect everyone who appears as payer or participant, in first-appearance order
//   - For each expense the payer is credited the amount and each member of the
//     group is debited amount/|group|, kept unrounded
//   - An expense without participants is shared by everyone collected above
//   - Only the final balances are rounded to cents, half away from zero, so
//     they may sum to a few cents off zero (at most half a cent per person)
func ComputeBalances(expenses []Expense) *Balances {
	members := ComputeMemberBalances(expenses)

	balances := NewBalances()
	for _, m := range members {
		balances.Add(m.MemberName, m.NetBalance)
	}
	return balances
}

// ComputeMemberBalances is ComputeBalances with the paid and owed totals kept
// per person. Members are returned in first-appearance order.
func ComputeMemberBalances(expenses []Expense) []MemberBalance {
	everyone := collectPeople(expenses)

	index := make(map[string]int, len(everyone))
	members := make([]MemberBalance, len(everyone))
	for i, p := range everyone {
		index[p] = i
		members[i] = MemberBalance{MemberName: p}
	}

	for _, e := range expenses {
		group := uniquePeople(e.Participants)
		if len(group) == 0 {
			group = everyone
		}
		// Only possible when nobody is known at all
		if len(group) == 0 {
			continue
		}

		share := Share(e.Amount, len(group))
		for _, p := range group {
			m := &members[index[p]]
			m.TotalOwed = m.TotalOwed.Add(share)
		}

		payer := &members[index[e.Payer]]
		payer.TotalPaid = payer.TotalPaid.Add(e.Amount)
	}

	for i := range members {
		m := &members[i]
		m.NetBalance = RoundCents(m.TotalPaid.Sub(m.TotalOwed))
		m.TotalPaid = RoundCents(m.TotalPaid)
		m.TotalOwed = RoundCents(m.TotalOwed)
	}
	return members
}

// collectPeople returns every payer and participant once, payer first, expense by expense.
func collectPeople(expenses []Expense) []string {
	seen := make(map[string]bool)
	var people []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			people = append(people, p)
		}
	}
	for _, e := range expenses {
		add(e.Payer)
		for _, p := range e.Participants {
			add(p)
		}
	}
	return people
}

// uniquePeople drops repeated names, keeping the first occurrence.
func uniquePeople(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
