package resolver

import (
	"math"
	"strings"
)

// pricingTokens lower the semantic threshold: pricing entries embed far
// from the way people phrase cost questions.
var pricingTokens = []string{"price", "pricing", "cost", "plan", "plans", "$", "fee", "subscription", "paid"}

func IsPricingQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, token := range pricingTokens {
		if strings.Contains(q, token) {
			return true
		}
	}
	return false
}

// EffectiveThreshold applies the pricing relaxation, never going below the floor.
func (c Config) EffectiveThreshold(question string) float64 {
	if !IsPricingQuestion(question) {
		return c.SemanticThreshold
	}
	relaxed := c.SemanticThreshold - c.PricingThresholdDrop
	// keep 0.6 - 0.2 at 0.4 instead of 0.39999999999999997
	relaxed = math.Round(relaxed*1e9) / 1e9
	return math.Max(c.PricingThresholdFloor, relaxed)
}
