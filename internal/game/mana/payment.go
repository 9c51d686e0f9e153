package mana

import (
	"fmt"
)

// PaymentPlan represents a plan for paying a mana cost.
type PaymentPlan struct {
	Spent map[ManaType]int
}

// PaymentResult represents the result of a payment attempt.
type PaymentResult struct {
	Success bool
	Plan    *PaymentPlan
	Reason  string
}

// CalculatePayment calculates a payment plan for a mana cost.
// Colored requirements are matched exactly, then generic mana is taken
// from colorless first and afterwards from whichever color has the most left.
func CalculatePayment(cost ManaCost, pool *ManaPool) *PaymentResult {
	plan := &PaymentPlan{Spent: make(map[ManaType]int)}
	testPool := pool.Copy()

	for _, manaType := range AllTypes {
		need := cost.Colored(manaType)
		if !testPool.Spend(manaType, need) {
			return &PaymentResult{
				Success: false,
				Reason:  fmt.Sprintf("insufficient %s mana (need %d)", manaType, need),
			}
		}
		if need > 0 {
			plan.Spent[manaType] += need
		}
	}

	for generic := cost.Generic; generic > 0; generic-- {
		source := genericSource(testPool)
		if source == "" {
			return &PaymentResult{
				Success: false,
				Reason:  fmt.Sprintf("insufficient mana for generic cost (need %d more)", generic),
			}
		}
		testPool.Spend(source, 1)
		plan.Spent[source]++
	}

	return &PaymentResult{Success: true, Plan: plan}
}

func genericSource(pool *ManaPool) ManaType {
	if pool.Colorless > 0 {
		return ManaColorless
	}
	var best ManaType
	bestAmount := 0
	for _, manaType := range AllTypes[1:] {
		if amount := pool.Get(manaType); amount > bestAmount {
			best, bestAmount = manaType, amount
		}
	}
	return best
}

// ExecutePayment spends the mana described by plan from the pool.
// Returns false without touching the pool if any part cannot be paid.
func ExecutePayment(plan *PaymentPlan, pool *ManaPool) bool {
	if plan == nil {
		return true
	}
	for manaType, amount := range plan.Spent {
		if pool.Get(manaType) < amount {
			return false
		}
	}
	for manaType, amount := range plan.Spent {
		pool.Spend(manaType, amount)
	}
	return true
}

// Pay calculates and executes a payment in one call.
func Pay(cost ManaCost, pool *ManaPool) error {
	result := CalculatePayment(cost, pool)
	if !result.Success {
		return fmt.Errorf("cannot pay %s: %s", cost, result.Reason)
	}
	ExecutePayment(result.Plan, pool)
	return nil
}
