package calculator

import (
	"container/heap"

	"github.com/shopspring/decimal"
)

// Settlement represents a payment from one person to another.
type Settlement struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// party is one creditor or debtor with what is still left to settle.
type party struct {
	person    string
	remaining decimal.Decimal
	order     int // position in the balance mapping
}

// partyHeap is a max-heap on remaining amount; equal amounts pop in balance order.
type partyHeap []*party

func (h partyHeap) Len() int { return len(h) }

func (h partyHeap) Less(i, j int) bool {
	if cmp := h[i].remaining.Cmp(h[j].remaining); cmp != 0 {
		return cmp > 0
	}
	return h[i].order < h[j].order
}

func (h partyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *partyHeap) Push(x any) { *h = append(*h, x.(*party)) }

func (h *partyHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return p
}

// ComputeSettlements turns net balances into payments that clear them.
//
// Greedy: the largest debtor pays the largest creditor the smaller of the two
// amounts, until one side runs out. This does not guarantee the minimum number
// of payments. Balances within Tolerance of zero take no part, and a party is
// dropped once what it has left is within Tolerance. Ties between equal
// amounts go to whoever comes first in balances.
//
// The loop emits at most creditors+debtors-1 payments: every iteration drops
// at least one party.
func ComputeSettlements(balances *Balances) []Settlement {
	creditors := &partyHeap{}
	debtors := &partyHeap{}

	order := 0
	for person, amount := range balances.All() {
		switch {
		case amount.GreaterThan(Tolerance):
			*creditors = append(*creditors, &party{person: person, remaining: amount, order: order})
		case amount.LessThan(Tolerance.Neg()):
			*debtors = append(*debtors, &party{person: person, remaining: amount.Neg(), order: order})
		}
		order++
	}
	heap.Init(creditors)
	heap.Init(debtors)

	settlements := []Settlement{}
	for creditors.Len() > 0 && debtors.Len() > 0 {
		d := heap.Pop(debtors).(*party)
		c := heap.Pop(creditors).(*party)

		amount := decimal.Min(d.remaining, c.remaining)
		settlements = append(settlements, Settlement{
			From:   d.person,
			To:     c.person,
			Amount: RoundCents(amount),
		})

		d.remaining = d.remaining.Sub(amount)
		c.remaining = c.remaining.Sub(amount)

		if d.remaining.GreaterThan(Tolerance) {
			heap.Push(debtors, d)
		}
		if c.remaining.GreaterThan(Tolerance) {
			heap.Push(creditors, c)
		}
	}

	return settlements
}

// Settle runs ComputeBalances followed by ComputeSettlements.
func Settle(expenses []Expense) (*Balances, []Settlement) {
	balances := ComputeBalances(expenses)
	return balances, ComputeSettlements(balances)
}

// TotalTransferred sums the amounts of settlements.
func TotalTransferred(settlements []Settlement) decimal.Decimal {
	total := decimal.Zero
	for _, s := range settlements {
		total = total.Add(s.Amount)
	}
	return total
}
