package quiz

import (
	"math/rand/v2"

	"github.com/remivoice/remi/internal/difficulty"
)

// Pick is one sampled question plus the tier it was actually drawn from,
// which differs from the requested tier when the pool fell back.
type Pick struct {
	Question   *Question
	ServedTier difficulty.Tier
}

// Bank holds questions grouped by tier and samples them without replacement.
type Bank struct {
	byTier map[difficulty.Tier][]*Question
}

// NewBank groups questions by tier.
func NewBank(questions []Question) *Bank {
	b := &Bank{byTier: make(map[difficulty.Tier][]*Question)}
	for i := range questions {
		q := &questions[i]
		b.byTier[q.Tier] = append(b.byTier[q.Tier], q)
	}
	return b
}

// Size returns the number of questions loaded for a tier.
func (b *Bank) Size(tier difficulty.Tier) int {
	return len(b.byTier[tier])
}

// Sample draws uniformly at random from the requested tier, excluding ids in
// asked. When that pool is exhausted it falls back through the remaining
// tiers in easy→medium→hard order. Returns nil only when every tier is
// exhausted; callers treat that as session termination, not an error.
func (b *Bank) Sample(tier difficulty.Tier, asked map[string]bool) *Pick {
	if q := b.draw(tier, asked); q != nil {
		return &Pick{Question: q, ServedTier: tier}
	}
	for _, t := range difficulty.Tiers {
		if t == tier {
			continue
		}
		if q := b.draw(t, asked); q != nil {
			return &Pick{Question: q, ServedTier: t}
		}
	}
	return nil
}

func (b *Bank) draw(tier difficulty.Tier, asked map[string]bool) *Question {
	var pool []*Question
	for _, q := range b.byTier[tier] {
		if !asked[q.ID] {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		return nil
	}
	return pool[rand.IntN(len(pool))]
}
