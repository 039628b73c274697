// Package viewmodel adapts the strategy engine to user interfaces: it keeps
// the player's state and reroll count across calls and turns observed hands
// into recommendations.
package viewmodel

import (
	"github.com/pkg/errors"

	. "github.com/janpfeifer/yahtzeeGo/internal/game"
	"github.com/janpfeifer/yahtzeeGo/internal/rules"
	"github.com/janpfeifer/yahtzeeGo/internal/strategy"
)

// Recommendation for the player: either a Reroll or a Field.
type Recommendation interface {
	recommendation()
}

// Reroll recommends keeping Keep and rerolling the rest.
type Reroll struct {
	Keep PartialHand
}

// Field recommends ending the turn, scoring the hand in the given field.
type Field struct {
	Section Section
	Field   int
}

func (Reroll) recommendation() {}
func (Field) recommendation()  {}

// ViewModel is the stateful wrapper a UI drives: one per player and game.
type ViewModel struct {
	// Rules used for this game.
	Rules *rules.Rules
	// State the player is in.
	State strategy.State

	// Rerolls left in the ongoing turn.
	rerolls Rerolls
}

// New returns a ViewModel at the start of a game.
func New(r *rules.Rules) *ViewModel {
	return &ViewModel{
		Rules:   r,
		State:   strategy.NewState(r),
		rerolls: MaxRerolls,
	}
}

// Recommend returns the engine's recommendation for the observed hand, which
// need not be sorted. It advances the held state: a Field recommendation is
// applied immediately and a fresh turn starts on the next call.
func (vm *ViewModel) Recommend(hand PartialHand) (Recommendation, error) {
	hand = hand.Clone()
	hand.Sort()
	if err := vm.checkShape(hand); err != nil {
		return nil, err
	}

	rerollRecomm := strategy.ChooseReroll(vm.State, hand, vm.rerolls, vm.Rules)
	if rerollRecomm.Hand.IsFull(vm.Rules.Dice.Dice) {
		fieldRecomm := strategy.ChooseField(vm.State, hand, vm.Rules)
		vm.State = fieldRecomm.State
		vm.rerolls = MaxRerolls
		return Field{Section: fieldRecomm.Section, Field: fieldRecomm.Field}, nil
	}
	vm.State = rerollRecomm.State
	vm.rerolls--
	return Reroll{Keep: rerollRecomm.Hand}, nil
}

// checkShape verifies that the observed hand is a full hand of exactly the
// dice the rules prescribe. The strategy functions panic on mismatching
// hands, so the one place unvalidated input enters must report instead.
func (vm *ViewModel) checkShape(hand PartialHand) error {
	for _, dc := range vm.Rules.Dice.Dice {
		var count Frequency
		for _, pd := range hand {
			if pd.Die == dc.Die {
				if pd.Pip < dc.Die.Min || pd.Pip > dc.Die.Max {
					return errors.Errorf("hand does not match selected rules: pip %d out of range for d%d",
						pd.Pip, dc.Die.Sides())
				}
				count++
			}
		}
		if count != dc.Count {
			return errors.Errorf("hand does not match selected rules: want %d of d%d, got %d",
				dc.Count, dc.Die.Sides(), count)
		}
	}
	if !hand.IsFull(vm.Rules.Dice.Dice) {
		return errors.Errorf("hand does not match selected rules: want %d dice, got %d",
			vm.Rules.Dice.Dice.NumDice(), len(hand))
	}
	return nil
}
