// Package rules describes the game variants as data: the dice in play, the
// scorecard field tables, the upper-section bonus and the Yahtzee-bonus
// policy. The decision core reads these tables only; no variant logic lives
// outside this package.
package rules

import (
	"sort"

	"github.com/pkg/errors"

	. "github.com/janpfeifer/yahtzeeGo/internal/game"
	"github.com/janpfeifer/yahtzeeGo/internal/hands"
)

// ScoreFunc calculates the score of a field from a sorted hand.
type ScoreFunc func(hand Hand) Score

// SectionRule is one scorecard field: a display name and its scorer.
type SectionRule struct {
	Name  string
	Score ScoreFunc
}

// DiceRules carries the dice multiset and its own short name, used as the
// cache-key suffix of probability tables.
type DiceRules struct {
	// ShortName is one printable character identifying this dice set:
	// 'a' for the regular five d6, 'b' for Extreme.
	ShortName byte
	Dice      Dice
}

// USBonus is the upper-section bonus rule: reaching Threshold awards Bonus
// once.
type USBonus struct {
	Threshold, Bonus Score
}

// Rules is the immutable description of one variant. Built once per game and
// shared freely.
type Rules struct {
	// ShortName is one printable character uniquely identifying this
	// combination of dice rules and Yahtzee-bonus variant. It prefixes
	// every cache key, so the assignment must stay stable: the regular
	// variants reuse their bonus policy's letter ('a'..'e'), Extreme
	// is 'f'.
	ShortName byte

	Dice         DiceRules
	Chips        Chips
	Fields       [2][]SectionRule
	USBonus      USBonus
	YahtzeeBonus BonusRules
}

// HasYahtzeeBonus reports whether the variant has any Yahtzee-bonus rule at
// all, i.e. the policy is not NONE.
func (r *Rules) HasYahtzeeBonus() bool {
	return r.YahtzeeBonus.ShortName != None.ShortName
}

const (
	regularDiceShortName = 'a'
	extremeDiceShortName = 'b'
	extremeShortName     = 'f'
)

// New builds the rules for a variant. extreme=true is only defined with the
// None Yahtzee-bonus policy; any other combination is rejected.
func New(extreme bool, yahtzeeBonus BonusRules) (*Rules, error) {
	if extreme && yahtzeeBonus.ShortName != None.ShortName {
		return nil, errors.Errorf(
			"invalid rules configuration: the Extreme variant only supports the NONE Yahtzee-bonus policy, got %q",
			yahtzeeBonus.ShortName)
	}

	dice := Dice{{Die: D6, Count: 5}}
	diceShortName := byte(regularDiceShortName)
	var chips Chips
	usBonus := USBonus{Threshold: 63, Bonus: 35}
	shortName := yahtzeeBonus.ShortName
	if extreme {
		dice = append(dice, DieCount{Die: D10, Count: 1})
		diceShortName = extremeDiceShortName
		chips = 3
		usBonus = USBonus{Threshold: 73, Bonus: 45}
		shortName = extremeShortName
	}

	return &Rules{
		ShortName: shortName,
		Dice: DiceRules{
			ShortName: diceShortName,
			Dice:      dice,
		},
		Chips:        chips,
		Fields:       [2][]SectionRule{upperSectionRules(), lowerSectionRules(extreme)},
		USBonus:      usBonus,
		YahtzeeBonus: yahtzeeBonus,
	}, nil
}

var upperSectionNames = [...]string{"Aces", "Twos", "Threes", "Fours", "Fives", "Sixes"}

func upperSectionRules() []SectionRule {
	fields := make([]SectionRule, 0, len(upperSectionNames))
	for ii, name := range upperSectionNames {
		pip := Pip(ii + 1)
		fields = append(fields, SectionRule{
			Name:  "Count and Add Only " + name,
			Score: func(hand Hand) Score { return hands.UpperSection(pip, hand) },
		})
	}
	return fields
}

func identicalRule(name string, required []Frequency, value func(Hand) Score) SectionRule {
	return SectionRule{
		Name:  name,
		Score: func(hand Hand) Score { return hands.MatchIdentical(required, value, hand) },
	}
}

func straightRule(name string, length Frequency, score Score) SectionRule {
	return SectionRule{
		Name:  name,
		Score: func(hand Hand) Score { return hands.Straight(length, score, hand) },
	}
}

func constScore(score Score) func(Hand) Score {
	return func(Hand) Score { return score }
}

// lowerSectionRules builds the lower-section field table. The ordering is
// part of the game definition: field indices are cache keys. The Yahtzee
// field sits at YahtzeeIndex in the regular table and at index 10 in the
// Extreme table.
func lowerSectionRules(extreme bool) []SectionRule {
	fields := []SectionRule{
		identicalRule("Three of a Kind", []Frequency{3}, hands.Total),
		identicalRule("Four of a Kind", []Frequency{4}, hands.Total),
	}
	if extreme {
		fields = append(fields,
			identicalRule("Two Pairs", []Frequency{2, 2}, hands.Total),
			identicalRule("Three Pairs", []Frequency{2, 2, 2}, constScore(35)),
			identicalRule("Two Triples", []Frequency{3, 3}, constScore(45)),
		)
	}
	fields = append(fields,
		identicalRule("Full House", []Frequency{2, 3}, constScore(FullHouseScore)))
	if extreme {
		fields = append(fields,
			identicalRule("Grand Full House", []Frequency{2, 4}, constScore(45)))
	}
	fields = append(fields,
		straightRule("Small Straight", 4, SmallStraightScore),
		straightRule("Large Straight", 5, LargeStraightScore),
	)
	if extreme {
		fields = append(fields, straightRule("Highway", 6, 50))
	}
	fields = append(fields,
		identicalRule("Yahtzee", []Frequency{YahtzeeSize}, constScore(YahtzeeScore)))
	if extreme {
		fields = append(fields,
			identicalRule("Yahtzee Extreme", []Frequency{6}, constScore(YahtzeeExtremeScore)),
			SectionRule{
				Name: "10 or less",
				Score: func(hand Hand) Score {
					if hands.Total(hand) <= 10 {
						return 40
					}
					return 0
				},
			},
			SectionRule{
				Name: "33 or more",
				Score: func(hand Hand) Score {
					if hands.Total(hand) >= 33 {
						return 40
					}
					return 0
				},
			},
		)
	}
	fields = append(fields, SectionRule{Name: "Chance", Score: hands.Total})
	if extreme {
		fields = append(fields, SectionRule{
			Name:  "Super Chance",
			Score: func(hand Hand) Score { return 2 * hands.Total(hand) },
		})
	}
	return fields
}

// gameVariants are the variants selectable by name on the command line.
var gameVariants = map[string]func() (*Rules, error){
	"forced":   func() (*Rules, error) { return New(false, ForcedJoker) },
	"free":     func() (*Rules, error) { return New(false, FreeJoker) },
	"original": func() (*Rules, error) { return New(false, Original) },
	"kniffel":  func() (*Rules, error) { return New(false, Kniffel) },
	"none":     func() (*Rules, error) { return New(false, None) },
	"extreme":  func() (*Rules, error) { return New(true, None) },
}

// ByName builds the rules for a named game variant.
func ByName(name string) (*Rules, error) {
	build, found := gameVariants[name]
	if !found {
		return nil, errors.Errorf("unknown game %q, valid games are: %v", name, VariantNames())
	}
	return build()
}

// VariantNames lists the selectable game names, sorted.
func VariantNames() []string {
	names := make([]string, 0, len(gameVariants))
	for name := range gameVariants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
