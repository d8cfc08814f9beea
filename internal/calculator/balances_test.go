package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name     string
		expenses []Expense
		want     map[string]string
		order    []string
	}{
		{
			name:     "no expenses",
			expenses: nil,
			want:     map[string]string{},
			order:    []string{},
		},
		{
			name: "payer shares with one friend",
			expenses: []Expense{
				{Payer: "A", Amount: dec("100"), Participants: []string{"A", "B"}},
			},
			want:  map[string]string{"A": "50", "B": "-50"},
			order: []string{"A", "B"},
		},
		{
			name: "empty participants split among everyone known",
			expenses: []Expense{
				{Payer: "B", Amount: dec("30"), Participants: []string{"B"}},
				{Payer: "C", Amount: dec("30"), Participants: []string{"C"}},
				{Payer: "A", Amount: dec("90")},
			},
			want:  map[string]string{"A": "60", "B": "-30", "C": "-30"},
			order: []string{"B", "C", "A"},
		},
		{
			name: "uneven split rounds only the final balances",
			expenses: []Expense{
				{Payer: "A", Amount: dec("100"), Participants: []string{"A", "B", "C"}},
			},
			want:  map[string]string{"A": "66.67", "B": "-33.33", "C": "-33.33"},
			order: []string{"A", "B", "C"},
		},
		{
			name:     "repeated uneven splits add up exact shares",
			expenses: repeat(3, Expense{Payer: "A", Amount: dec("10"), Participants: []string{"A", "B", "C"}}),
			want:     map[string]string{"A": "20", "B": "-10", "C": "-10"},
			order:    []string{"A", "B", "C"},
		},
		{
			name:     "many one-unit expenses do not drift",
			expenses: repeat(100, Expense{Payer: "B", Amount: dec("1"), Participants: []string{"A", "B", "C"}}),
			want:     map[string]string{"B": "66.67", "A": "-33.33", "C": "-33.33"},
			order:    []string{"B", "A", "C"},
		},
		{
			name: "sub-cent amounts are not rounded per expense",
			expenses: []Expense{
				{Payer: "A", Amount: dec("0.004"), Participants: []string{"B"}},
				{Payer: "A", Amount: dec("0.004"), Participants: []string{"B"}},
			},
			want:  map[string]string{"A": "0.01", "B": "-0.01"},
			order: []string{"A", "B"},
		},
		{
			name: "amounts beyond int64 cents keep their sign",
			expenses: []Expense{
				{Payer: "A", Amount: dec("100000000000000000"), Participants: []string{"A", "B"}},
			},
			want:  map[string]string{"A": "50000000000000000", "B": "-50000000000000000"},
			order: []string{"A", "B"},
		},
		{
			name: "payer need not be a participant",
			expenses: []Expense{
				{Payer: "A", Amount: dec("40"), Participants: []string{"B", "C"}},
			},
			want:  map[string]string{"A": "40", "B": "-20", "C": "-20"},
			order: []string{"A", "B", "C"},
		},
		{
			name: "duplicate participants count once",
			expenses: []Expense{
				{Payer: "A", Amount: dec("100"), Participants: []string{"A", "B", "B"}},
			},
			want:  map[string]string{"A": "50", "B": "-50"},
			order: []string{"A", "B"},
		},
		{
			name: "two expenses cancel out",
			expenses: []Expense{
				{Payer: "A", Amount: dec("50"), Participants: []string{"B"}},
				{Payer: "B", Amount: dec("50"), Participants: []string{"A"}},
			},
			want:  map[string]string{"A": "0", "B": "0"},
			order: []string{"A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := ComputeBalances(tt.expenses)

			if balances.Len() != len(tt.want) {
				t.Fatalf("got %d balances, want %d", balances.Len(), len(tt.want))
			}
			for person, want := range tt.want {
				if got := balances.Get(person); !got.Equal(dec(want)) {
					t.Errorf("%s balance = %s, want %s", person, got, want)
				}
			}
			people := balances.People()
			for i, p := range tt.order {
				if people[i] != p {
					t.Errorf("position %d = %s, want %s", i, people[i], p)
				}
			}
		})
	}
}

func TestComputeBalances_ZeroSum(t *testing.T) {
	expenses := []Expense{
		{Payer: "Alice", Amount: dec("100"), Participants: []string{"Alice", "Bob", "Charlie"}},
		{Payer: "Bob", Amount: dec("17.11"), Participants: []string{"Charlie", "Diana", "Eve"}},
		{Payer: "Diana", Amount: dec("3.333"), Participants: nil},
		{Payer: "Eve", Amount: dec("0.07"), Participants: []string{"Alice", "Bob", "Charlie", "Diana", "Eve", "Frank"}},
		{Payer: "Frank", Amount: dec("250.99"), Participants: []string{"Frank", "Alice"}},
	}

	balances := ComputeBalances(expenses)
	sum := balances.Sum()
	// each rounded balance is at most half a cent away from its exact value
	limit := dec("0.005").Mul(decimal.NewFromInt(int64(balances.Len())))
	if sum.Abs().GreaterThan(limit) {
		t.Errorf("balances sum to %s, want 0 within %s", sum, limit)
	}
}

func repeat(n int, e Expense) []Expense {
	out := make([]Expense, n)
	for i := range out {
		out[i] = e
	}
	return out
}

func TestComputeMemberBalances(t *testing.T) {
	expenses := []Expense{
		{Payer: "Alice", Amount: dec("60"), Participants: []string{"Alice", "Bob", "Charlie"}},
		{Payer: "Bob", Amount: dec("30"), Participants: []string{"Alice", "Bob"}},
	}

	members := ComputeMemberBalances(expenses)
	if len(members) != 3 {
		t.Fatalf("got %d members, want 3", len(members))
	}

	want := []struct {
		name            string
		paid, owed, net string
	}{
		{"Alice", "60", "35", "25"},
		{"Bob", "30", "35", "-5"},
		{"Charlie", "0", "20", "-20"},
	}
	for i, w := range want {
		m := members[i]
		if m.MemberName != w.name {
			t.Errorf("member %d = %s, want %s", i, m.MemberName, w.name)
		}
		if !m.TotalPaid.Equal(dec(w.paid)) {
			t.Errorf("%s paid = %s, want %s", w.name, m.TotalPaid, w.paid)
		}
		if !m.TotalOwed.Equal(dec(w.owed)) {
			t.Errorf("%s owed = %s, want %s", w.name, m.TotalOwed, w.owed)
		}
		if !m.NetBalance.Equal(dec(w.net)) {
			t.Errorf("%s net = %s, want %s", w.name, m.NetBalance, w.net)
		}
	}
}

func TestBalances_Add(t *testing.T) {
	b := NewBalances()
	b.Add("Bob", dec("10"))
	b.Add("Alice", dec("-4"))
	b.Add("Bob", dec("-6"))

	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if got := b.Get("Bob"); !got.Equal(dec("4")) {
		t.Errorf("Bob = %s, want 4", got)
	}
	if !b.Has("Alice") || b.Has("Charlie") {
		t.Errorf("Has() reported wrong membership")
	}
	if got := b.Get("Charlie"); !got.Equal(decimal.Zero) {
		t.Errorf("unknown person = %s, want 0", got)
	}

	var order []string
	for p := range b.All() {
		order = append(order, p)
	}
	if len(order) != 2 || order[0] != "Bob" || order[1] != "Alice" {
		t.Errorf("iteration order = %v, want [Bob Alice]", order)
	}
}
