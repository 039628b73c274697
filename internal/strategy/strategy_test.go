package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/janpfeifer/yahtzeeGo/internal/game"
	"github.com/janpfeifer/yahtzeeGo/internal/hands"
	"github.com/janpfeifer/yahtzeeGo/internal/rules"
)

var coin = Die{Min: 1, Max: 2}

// throwTwoRules is a minimal chip game: one coin, one lower-section field
// worth pip-1 -- you want to throw a 2.
func throwTwoRules() *rules.Rules {
	return &rules.Rules{
		ShortName: 'y',
		Dice:      rules.DiceRules{ShortName: 'y', Dice: Dice{{Die: coin, Count: 1}}},
		Chips:     2,
		Fields: [2][]rules.SectionRule{
			{},
			{{Name: "Throw 2", Score: func(hand Hand) Score { return Score(hand[0]) - 1 }}},
		},
		USBonus:      rules.USBonus{Threshold: 2, Bonus: 0},
		YahtzeeBonus: rules.None,
	}
}

func throwTwoState(chips Chips) State {
	return State{
		Used:  ScoreCard{[]bool{}, []bool{false}},
		Chips: chips,
	}
}

func TestChooseRerollChips(t *testing.T) {
	r := throwTwoRules()
	readyHand := PartialHand{{Die: coin, Pip: 2}}
	unreadyHand := PartialHand{{Die: coin, Pip: 1}}

	// With no rerolls and no 2 thrown yet, a chip should be used -- and
	// only one of them.
	rec := ChooseReroll(throwTwoState(2), unreadyHand, 0, r)
	require.Empty(t, rec.Hand)
	require.Equal(t, Chips(1), rec.State.Chips)
	require.InDelta(t, 0.5, rec.Expectation, floatDelta)

	// With no rerolls and a 2 thrown, the chip should not be used.
	rec = ChooseReroll(throwTwoState(2), readyHand, 0, r)
	require.Equal(t, readyHand, rec.Hand)
	require.Equal(t, Chips(2), rec.State.Chips)
	require.InDelta(t, 1.0, rec.Expectation, floatDelta)

	// After the chip reroll the turn must end, chips or not.
	rec = ChooseReroll(throwTwoState(2), unreadyHand, -2, r)
	require.Equal(t, unreadyHand, rec.Hand)
	require.InDelta(t, 0.0, rec.Expectation, floatDelta)
}

func TestChooseRerollRerolls(t *testing.T) {
	r := throwTwoRules()
	readyHand := PartialHand{{Die: coin, Pip: 2}}
	unreadyHand := PartialHand{{Die: coin, Pip: 1}}

	// With a reroll and no 2 thrown, the reroll should be used. Simpler
	// without chips.
	rec := ChooseReroll(throwTwoState(0), unreadyHand, 1, r)
	require.Empty(t, rec.Hand)
	require.InDelta(t, 0.5, rec.Expectation, floatDelta)

	// With a reroll and a 2 thrown, no reroll should happen.
	rec = ChooseReroll(throwTwoState(0), readyHand, 1, r)
	require.Equal(t, readyHand, rec.Hand)
	require.InDelta(t, 1.0, rec.Expectation, floatDelta)
}

func TestChooseRerollDeterminism(t *testing.T) {
	r := throwTwoRules()
	hand := PartialHand{{Die: coin, Pip: 1}}
	first := ChooseReroll(throwTwoState(1), hand, 1, r)
	for range 10 {
		require.Equal(t, first, ChooseReroll(throwTwoState(1), hand, 1, r))
	}
}

// coinPairRules is a two-coin game: the lower section has four dummy
// fields, Chance and an "All Twos" Yahtzee field at YahtzeeIndex; the upper
// section counts aces and twos. The upper-section bonus is 1 for reaching 1,
// and the Yahtzee bonus always scores 4 with a bonus of 1.
func coinPairRules() *rules.Rules {
	dummy := rules.SectionRule{Name: "Dummy", Score: func(Hand) Score { return 0 }}
	return &rules.Rules{
		ShortName: 'z',
		Dice:      rules.DiceRules{ShortName: 'z', Dice: Dice{{Die: coin, Count: 2}}},
		Fields: [2][]rules.SectionRule{
			{
				{Name: "Count and Add Only Aces", Score: func(hand Hand) Score {
					return hands.UpperSection(1, hand)
				}},
				{Name: "Count and Add Only Twos", Score: func(hand Hand) Score {
					return hands.UpperSection(2, hand)
				}},
			},
			{
				dummy, dummy, dummy, dummy,
				{Name: "Chance", Score: func(hand Hand) Score { return hand.Total() }},
				{Name: "All Twos", Score: func(hand Hand) Score {
					if hand.Total() == 4 {
						return 4
					}
					return 0
				}},
			},
		},
		USBonus: rules.USBonus{Threshold: 1, Bonus: 1},
		YahtzeeBonus: rules.BonusRules{
			ShortName: 'z',
			Apply: func(ScoreCard, Pip, Section, int) (Score, Score) {
				return 4, 1
			},
		},
	}
}

func TestChooseField(t *testing.T) {
	r := coinPairRules()
	pairOfTwos := PartialHand{{Die: coin, Pip: 2}, {Die: coin, Pip: 2}}

	// A pair of twos scores higher as Chance than as Count Aces, and All
	// Twos -- worth keeping open -- is used: Chance it is.
	state := State{
		// Some base score out of thin air, to check it really adds up.
		Score: [2]Score{0, 1},
		Used: ScoreCard{
			[]bool{false, true},
			[]bool{true, true, true, true, false, true},
		},
	}
	rec := ChooseField(state, pairOfTwos, r)
	require.Equal(t, LS, rec.Section)
	require.Equal(t, 4, rec.Field)
	require.Equal(t, Score(4+1), rec.State.Score[LS])
	require.True(t, rec.State.Used[LS][4])

	// With All Twos still open it promises less than holding Chance open,
	// so it should be used over Chance.
	state.Used = ScoreCard{
		[]bool{true, true},
		[]bool{true, true, true, true, false, false},
	}
	rec = ChooseField(state, pairOfTwos, r)
	require.Equal(t, LS, rec.Section)
	require.Equal(t, YahtzeeIndex, rec.Field)
	require.Equal(t, Score(4+1), rec.State.Score[LS])
	require.True(t, rec.State.Used[LS][YahtzeeIndex])
	require.True(t, rec.State.ScoredYahtzee)

	// Upper-section bonus is awarded at the last field.
	state.Used = ScoreCard{[]bool{false, true}, []bool{true, true, true, true, true, true}}
	oneAndTwo := PartialHand{{Die: coin, Pip: 1}, {Die: coin, Pip: 2}}
	rec = ChooseField(state, oneAndTwo, r)
	require.Equal(t, US, rec.Section)
	require.Equal(t, 0, rec.Field)
	require.Equal(t, Score(2), rec.State.Score[US])

	// ...and not awarded when the threshold is missed.
	rec = ChooseField(state, pairOfTwos, r)
	require.Equal(t, US, rec.Section)
	require.Equal(t, 0, rec.Field)
	require.Equal(t, Score(0), rec.State.Score[US])

	// Yahtzee bonus: a second All Twos pays the policy's score and bonus
	// into the chosen field.
	state.Used = ScoreCard{
		[]bool{true, true},
		[]bool{true, true, true, true, false, true},
	}
	state.ScoredYahtzee = true
	rec = ChooseField(state, pairOfTwos, r)
	require.Equal(t, LS, rec.Section)
	require.Equal(t, 4, rec.Field)
	require.Equal(t, Score(4+1+1), rec.State.Score[LS])
}

func TestChooseFieldExtremeTerminal(t *testing.T) {
	r, err := rules.New(true, rules.None)
	require.NoError(t, err)

	// Last open field is Yahtzee Extreme, the hand is six 1s. The NONE
	// policy never applies, even with a Yahtzee already scored: the field
	// pays its face value of 75.
	yahtzeeExtremeIndex := 11
	require.Equal(t, "Yahtzee Extreme", r.Fields[LS][yahtzeeExtremeIndex].Name)
	state := NewState(r)
	state.Score = [2]Score{10, 20}
	state.ScoredYahtzee = true
	for field := range state.Used[US] {
		state.Used[US][field] = true
	}
	for field := range state.Used[LS] {
		state.Used[LS][field] = field != yahtzeeExtremeIndex
	}

	hand := PartialHand{{Die: D10, Pip: 1}}
	for range 5 {
		hand = append(hand, PartialDie{Die: D6, Pip: 1})
	}
	rec := ChooseField(state, hand, r)
	require.Equal(t, LS, rec.Section)
	require.Equal(t, yahtzeeExtremeIndex, rec.Field)
	require.Equal(t, Score(10+20+75), rec.State.Score[US]+rec.State.Score[LS])
	require.InDelta(t, float64(10+20+75), rec.Expectation, floatDelta)
}

func TestChooseFieldDoesNotMutateInput(t *testing.T) {
	r := coinPairRules()
	state := State{
		Used: ScoreCard{
			[]bool{false, false},
			[]bool{true, true, true, true, false, false},
		},
	}
	hand := PartialHand{{Die: coin, Pip: 1}, {Die: coin, Pip: 2}}
	ChooseField(state, hand, r)
	require.Equal(t, ScoreCard{
		[]bool{false, false},
		[]bool{true, true, true, true, false, false},
	}, state.Used)
	require.Equal(t, [2]Score{0, 0}, state.Score)
}
