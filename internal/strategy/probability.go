package strategy

import (
	"github.com/gomlx/exceptions"

	. "github.com/janpfeifer/yahtzeeGo/internal/game"
	"github.com/janpfeifer/yahtzeeGo/internal/rules"
)

// HandProbability is one outcome of rolling the remaining dice: the full
// canonical hand and its probability.
type HandProbability struct {
	Hand PartialHand
	P    float64
}

// ProbabilitiesToRoll maps every reachable full hand -- keyed by its compact
// canonical encoding -- to the probability of rolling it.
type ProbabilitiesToRoll struct {
	Table map[string]HandProbability
}

// ProbabilityToRoll enumerates every distinct outcome of rolling the dice
// not yet fixed in have, and returns the probability of each. Probabilities
// are exact up to float rounding: each enumerated permutation contributes
// 1/total, accumulated per canonical hand.
//
// It panics if have holds dice the rules don't provide: that is a programmer
// error, unreachable when callers validate hand shapes first.
//
// Results are memoized under have.Compact() plus the dice short name.
func ProbabilityToRoll(have PartialHand, diceRules rules.DiceRules) ProbabilitiesToRoll {
	key := have.Compact() + string(diceRules.ShortName)
	return probabilityCache.computeOnce(key, func() ProbabilitiesToRoll {
		return rollProbabilities(have, diceRules)
	})
}

func rollProbabilities(have PartialHand, diceRules rules.DiceRules) ProbabilitiesToRoll {
	// Dice left to roll: the rules' multiset minus what is already fixed.
	leftover := diceRules.Dice.Clone()
nextHave:
	for _, pd := range have {
		for ii := range leftover {
			if leftover[ii].Die == pd.Die && leftover[ii].Count > 0 {
				leftover[ii].Count--
				continue nextHave
			}
		}
		exceptions.Panicf("mismatch between hand %q and dice rules %q", have.Compact(), diceRules.ShortName)
	}

	// Append every pip of every leftover die to every hand so far.
	hands := []PartialHand{have.Clone()}
	for _, dc := range leftover {
		for n := Frequency(0); n < dc.Count; n++ {
			next := make([]PartialHand, 0, len(hands)*dc.Die.Sides())
			for _, hand := range hands {
				for pip := dc.Die.Min; pip <= dc.Die.Max; pip++ {
					extended := make(PartialHand, len(hand), len(hand)+1)
					copy(extended, hand)
					extended = append(extended, PartialDie{Die: dc.Die, Pip: pip})
					next = append(next, extended)
				}
			}
			hands = next
		}
	}

	total := 1
	for _, dc := range leftover {
		for n := Frequency(0); n < dc.Count; n++ {
			total *= dc.Die.Sides()
		}
	}
	perHand := 1.0 / float64(total)

	// Sort each hand canonically and add up the probabilities.
	table := make(map[string]HandProbability, len(hands))
	for _, hand := range hands {
		hand.Sort()
		key := hand.Compact()
		entry, found := table[key]
		if !found {
			entry.Hand = hand
		}
		entry.P += perHand
		table[key] = entry
	}
	return ProbabilitiesToRoll{Table: table}
}
