package rules

import (
	"github.com/gomlx/exceptions"

	. "github.com/janpfeifer/yahtzeeGo/internal/game"
)

// YahtzeeBonusScore is the additive bonus of the joker variants.
const YahtzeeBonusScore Score = 100

// BonusFunc decides what a second (or later) Yahtzee is worth. It is invoked
// during field selection only when the player has already scored a positive
// Yahtzee, the policy is not None and the current hand is itself a Yahtzee.
// It returns the score written into the chosen field and the additive bonus
// added to the lower-section total.
type BonusFunc func(used ScoreCard, pip Pip, section Section, field int) (score, bonus Score)

// BonusRules is a Yahtzee-bonus policy tagged with its short name. The short
// name doubles as the rules short name of the regular variants, so the
// assignment below ('a'..'e') is part of the cache-key format.
type BonusRules struct {
	ShortName byte
	Apply     BonusFunc
}

// jokerFields maps the lower-section indices where a Yahtzee may act as a
// joker -- Full House, Small Straight, Large Straight -- to their fixed
// scores.
var jokerFields = map[int]Score{
	2: FullHouseScore,
	3: SmallStraightScore,
	4: LargeStraightScore,
}

func countAll(pip Pip) Score {
	return Score(YahtzeeSize) * Score(pip)
}

// ForcedJoker is the standard rule of regular Yahtzee: the matching
// upper-section field must be used first; afterwards joker fields pay their
// fixed score. Every placement carries the 100 bonus, except a lower-section
// one while the matching upper-section field is still open, which scores
// (0, 0).
var ForcedJoker = BonusRules{
	ShortName: 'a',
	Apply: func(used ScoreCard, pip Pip, section Section, field int) (Score, Score) {
		pipIdx := int(pip) - 1
		if section == US {
			if field == pipIdx {
				return countAll(pip), YahtzeeBonusScore
			}
			return 0, YahtzeeBonusScore
		}
		if !used[US][pipIdx] {
			// Upper section unused: the player is forced there.
			return 0, 0
		}
		if score, joker := jokerFields[field]; joker {
			return score, YahtzeeBonusScore
		}
		return countAll(pip), YahtzeeBonusScore
	},
}

// FreeJoker relaxes the forced placement: any lower-section field may be
// chosen, but the joker fields only pay their fixed score once the matching
// upper-section field is used.
var FreeJoker = BonusRules{
	ShortName: 'b',
	Apply: func(used ScoreCard, pip Pip, section Section, field int) (Score, Score) {
		pipIdx := int(pip) - 1
		if section == US {
			if field == pipIdx {
				return countAll(pip), YahtzeeBonusScore
			}
			return 0, YahtzeeBonusScore
		}
		if score, joker := jokerFields[field]; joker {
			if used[US][pipIdx] {
				return score, YahtzeeBonusScore
			}
			return 0, YahtzeeBonusScore
		}
		return countAll(pip), YahtzeeBonusScore
	},
}

// Original implements the 1956 rules: upper-section placements score the
// dice but carry no bonus, lower-section placements always allow joker or
// count-all scoring with the 100 bonus.
var Original = BonusRules{
	ShortName: 'c',
	Apply: func(used ScoreCard, pip Pip, section Section, field int) (Score, Score) {
		pipIdx := int(pip) - 1
		if section == US {
			if field == pipIdx {
				return countAll(pip), 0
			}
			return 0, 0
		}
		if score, joker := jokerFields[field]; joker {
			return score, YahtzeeBonusScore
		}
		return countAll(pip), YahtzeeBonusScore
	},
}

// Kniffel is the German variant: forced upper placement as in ForcedJoker,
// the bonus is worth another 50, and jokers into Full House or the straights
// are disallowed outright.
var Kniffel = BonusRules{
	ShortName: 'd',
	Apply: func(used ScoreCard, pip Pip, section Section, field int) (Score, Score) {
		pipIdx := int(pip) - 1
		if section == US {
			if field == pipIdx {
				return countAll(pip), YahtzeeScore
			}
			return 0, YahtzeeScore
		}
		if !used[US][pipIdx] {
			return 0, 0
		}
		if _, joker := jokerFields[field]; joker {
			return 0, 0
		}
		return countAll(pip), YahtzeeScore
	},
}

// None is the no-bonus policy of Yahtzee Extreme. Callers must check
// Rules.HasYahtzeeBonus before applying a bonus; invoking None is a bug.
var None = BonusRules{
	ShortName: 'e',
	Apply: func(ScoreCard, Pip, Section, int) (Score, Score) {
		exceptions.Panicf("the NONE Yahtzee-bonus policy must never be invoked")
		return 0, 0
	},
}

// AllVariants lists the Yahtzee-bonus policies of the regular dice rules,
// in warm-up order.
var AllVariants = []BonusRules{ForcedJoker, FreeJoker, Original, Kniffel, None}
