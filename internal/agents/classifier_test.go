package agents

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		message string
		want    int
	}{
		{"hello there, how are you?", AgentGeneral},
		{"tell me a story about pirates", AgentGeneral},
		{"show users from customers where age > 30", AgentSQL},
		{"SELECT everything in the orders TABLE", AgentSQL},
		{"how many orders did we get last week", AgentSQL},
		{"list all products from inventory", AgentSQL},
		{"find the cheapest item in catalog", AgentSQL},
		{"what is 2 + 2", AgentCalculator},
		{"calculate 15 * 3", AgentCalculator},
		{"5+3", AgentCalculator},
		{"10 / 2", AgentCalculator},
		{"what's the product of 4 and 6", AgentCalculator},
		{"please add these numbers", AgentCalculator},
		{"difference between 9 and 5", AgentCalculator},
	}

	for _, tc := range cases {
		if got := Classify(tc.message); got != tc.want {
			t.Errorf("Classify(%q) = %d, want %d", tc.message, got, tc.want)
		}
	}
}

func TestClassifyQueryBeatsArithmetic(t *testing.T) {
	// Both a query indicator ("from") and an arithmetic expression are
	// present; category order makes this a structured-query request.
	msg := "sum of 2 + 2 from the sales table"
	if got := Classify(msg); got != AgentSQL {
		t.Fatalf("Classify(%q) = %d, want %d", msg, got, AgentSQL)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	msg := "compute 7 ^ 2"
	first := Classify(msg)
	for i := 0; i < 10; i++ {
		if got := Classify(msg); got != first {
			t.Fatalf("Classify(%q) changed between calls: %d then %d", msg, first, got)
		}
	}
}
