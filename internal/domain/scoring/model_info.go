package scoring

// Rule documents one adjustment of the rule set.
type Rule struct {
	Feature string `json:"feature"`
	Rule    string `json:"rule"`
}

// Rules describes the rule set in evaluation order.
func Rules() []Rule {
	return []Rule{
		{Feature: "sex", Rule: "female +3, male -1"},
		{Feature: "pclass", Rule: "1 +2, 2 +1, 3 -1"},
		{Feature: "age", Rule: "<=12 +2, <=25 +1, >60 -1"},
		{Feature: "sibsp+parch", Rule: "1 or 2 +1, >4 -1"},
		{Feature: "fare", Rule: ">50 +2, >20 +1"},
		{Feature: "embarked", Rule: "C +1"},
	}
}
