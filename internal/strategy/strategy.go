// Package strategy implements the optimal-play decision core: three
// mutually recursive, memoized functions that together compute the action
// maximizing the expected final score.
//
// All three are pure functions of their inputs; the caches are shared
// process-wide and may be persisted (see DumpCaches / PopulateCaches).
// Candidate enumeration inside ChooseReroll and ChooseField is a fork-join
// parallel map followed by a serial maximum over the (deterministic) input
// order, so parallel and serial evaluation recommend the same action: the
// first candidate in generation order wins ties.
package strategy

import (
	"strconv"

	. "github.com/janpfeifer/yahtzeeGo/internal/game"
	"github.com/janpfeifer/yahtzeeGo/internal/generics"
	"github.com/janpfeifer/yahtzeeGo/internal/rules"
)

// RerollRecomm is the result of ChooseReroll: which dice to keep and the
// expected final score of playing on optimally.
type RerollRecomm struct {
	// Hand to keep. If it is the full hand, the recommendation is to stop
	// and choose a field.
	Hand PartialHand
	// State is passed on while rerolling, with one chip fewer when a chip
	// is spent; when the turn ends it is the state after the recommended
	// field was applied.
	State State
	// Expectation of the final game score.
	Expectation float64
}

// FieldRecomm is the result of ChooseField: which unused field to mark.
type FieldRecomm struct {
	Section Section
	Field   int
	// State after choosing this field.
	State State
	// Expectation of the final game score.
	Expectation float64
}

// ChooseReroll returns the subset of hand to keep with rerolls rerolls left
// this turn, and the expected final score assuming optimal play thereafter.
//
// rerolls counts down from MaxRerolls. The negative values are internal
// sentinels for the chip mechanic: -1 means a chip is being spent on one
// extra reroll, -2 means the chip reroll is over and the turn must end.
func ChooseReroll(state State, hand PartialHand, rerolls Rerolls, r *rules.Rules) RerollRecomm {
	key := state.Compact() + string(r.ShortName) + hand.Compact() + "," + strconv.Itoa(int(rerolls))
	return rerollCache.computeOnce(key, func() RerollRecomm {
		return chooseReroll(state, hand, rerolls, r)
	})
}

func chooseReroll(state State, hand PartialHand, rerolls Rerolls, r *rules.Rules) RerollRecomm {
	if rerolls == 0 || rerolls == -2 {
		// Turn is ending.
		stopNow := ChooseField(state, hand, r)
		if rerolls == 0 && state.Chips > 0 {
			// A chip buys one more reroll, at most once per turn.
			chipOff := state.Clone()
			chipOff.Chips--
			useChip := ChooseReroll(chipOff, hand, rerolls-1, r)
			if useChip.Expectation > stopNow.Expectation {
				return useChip
			}
		}
		return RerollRecomm{Hand: hand, State: stopNow.State, Expectation: stopNow.Expectation}
	}

	candidates := keepSubsets(hand)
	expectations := generics.ParallelSliceMap(candidates, func(keep PartialHand) float64 {
		if keep.IsFull(r.Dice.Dice) {
			// Keeping everything: rerolling changes nothing, score now.
			return ChooseField(state, hand, r).Expectation
		}
		// Expectation of this keep-set: every rollable completion,
		// weighted by its probability. The table is iterated in key
		// order so the float sum is reproducible.
		var expectation float64
		probabilities := ProbabilityToRoll(keep, r.Dice)
		for _, entry := range generics.SortedKeysAndValues(probabilities.Table) {
			reroll := ChooseReroll(state, entry.Hand, rerolls-1, r)
			expectation += entry.P * reroll.Expectation
		}
		return expectation
	})

	best := 0
	for ii := 1; ii < len(expectations); ii++ {
		if expectations[ii] > expectations[best] {
			best = ii
		}
	}
	return RerollRecomm{Hand: candidates[best], State: state, Expectation: expectations[best]}
}

// keepSubsets enumerates all 2^len(hand) keep-sets of the hand, in a stable
// order: the empty hand first, the full hand last.
func keepSubsets(hand PartialHand) []PartialHand {
	subsets := make([]PartialHand, 0, 1<<len(hand))
	for mask := 0; mask < 1<<len(hand); mask++ {
		subset := PartialHand{}
		for ii, pd := range hand {
			if mask&(1<<ii) != 0 {
				subset = append(subset, pd)
			}
		}
		subsets = append(subsets, subset)
	}
	return subsets
}

// ChooseField decides, for a turn ending with the held hand have, which
// currently-unused field to mark to maximize the expected final score.
func ChooseField(state State, have PartialHand, r *rules.Rules) FieldRecomm {
	key := state.Compact() + string(r.ShortName) + have.Compact()
	return fieldCache.computeOnce(key, func() FieldRecomm {
		return chooseField(state, have, r)
	})
}

type fieldOption struct {
	section Section
	field   int
}

func chooseField(state State, have PartialHand, r *rules.Rules) FieldRecomm {
	hand := have.Pips()

	var options []fieldOption
	for _, section := range []Section{US, LS} {
		for field, used := range state.Used[section] {
			if !used {
				options = append(options, fieldOption{section: section, field: field})
			}
		}
	}

	yahtzeeBonus := state.ScoredYahtzee &&
		r.HasYahtzeeBonus() &&
		r.Fields[LS][YahtzeeIndex].Score(hand) > 0

	// apply writes the hand into the option's field, returning the updated
	// state. The bonus policy sees the pre-update scorecard.
	apply := func(opt fieldOption) FieldRecomm {
		var score, bonus Score
		if yahtzeeBonus {
			score, bonus = r.YahtzeeBonus.Apply(state.Used, hand[0], opt.section, opt.field)
		} else {
			score = r.Fields[opt.section][opt.field].Score(hand)
		}
		newState := state.Clone()
		newState.Score[opt.section] += score
		newState.Score[LS] += bonus
		newState.Used[opt.section][opt.field] = true
		if score > 0 && opt.section == LS && opt.field == YahtzeeIndex {
			newState.ScoredYahtzee = true
		}
		return FieldRecomm{Section: opt.section, Field: opt.field, State: newState}
	}

	if len(options) == 1 {
		// Last empty field: the game ends here. This is the one point
		// where the upper-section bonus threshold is tested -- the
		// upper-section score only grows, so testing it once on the full
		// card awards the bonus exactly once whenever it was reached.
		rec := apply(options[0])
		if rec.State.Score[US] >= r.USBonus.Threshold {
			rec.State.Score[US] += r.USBonus.Bonus
		}
		rec.Expectation = float64(rec.State.Score[US] + rec.State.Score[LS])
		return rec
	}

	recomms := generics.ParallelSliceMap(options, func(opt fieldOption) FieldRecomm {
		rec := apply(opt)
		// Continuation value: a fresh turn from the updated state.
		rec.Expectation = ChooseReroll(rec.State, PartialHand{}, MaxRerolls, r).Expectation
		return rec
	})

	best := 0
	for ii := 1; ii < len(recomms); ii++ {
		if recomms[ii].Expectation > recomms[best].Expectation {
			best = ii
		}
	}
	return recomms[best]
}
