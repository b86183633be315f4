package agents

import (
	"regexp"
	"strings"
)

// Query indicators are checked before arithmetic ones: a message matching
// both ("sum of sales from orders") is a structured-query request.
var queryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`select|from|where|join|table|database|sql|query`),
	regexp.MustCompile(`show.*from|get.*from|list.*from|display.*from`),
	regexp.MustCompile(`find.*in|search.*in|look.*in`),
	regexp.MustCompile(`how many|count|sum|average|max|min`),
}

var arithmeticPatterns = []*regexp.Regexp{
	regexp.MustCompile(`calculate|compute|what is|what's`),
	regexp.MustCompile(`\d+\s*[-+*/^]\s*\d+`),
	regexp.MustCompile(`add|subtract|multiply|divide|plus|minus|times`),
	regexp.MustCompile(`sum of|difference between|product of|quotient of`),
}

// Classify picks the agent for a message. Deterministic and total: every
// message maps to exactly one of AgentGeneral, AgentSQL, AgentCalculator.
func Classify(message string) int {
	m := strings.ToLower(message)

	for _, p := range queryPatterns {
		if p.MatchString(m) {
			return AgentSQL
		}
	}
	for _, p := range arithmeticPatterns {
		if p.MatchString(m) {
			return AgentCalculator
		}
	}
	return AgentGeneral
}
