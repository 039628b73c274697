// Package hands implements the pure scoring functions over sorted hands that
// the field tables of every variant are built from.
package hands

import (
	. "github.com/janpfeifer/yahtzeeGo/internal/game"
)

// UpperSection scores an upper-section field: the number of pips equal to
// field, multiplied by field.
func UpperSection(field Pip, hand Hand) Score {
	var count Score
	for _, pip := range hand {
		if pip == field {
			count++
		}
	}
	return count * Score(field)
}

// Total sums the hand. It is the Chance scorer and the value function of the
// n-of-a-kind fields.
func Total(hand Hand) Score {
	return hand.Total()
}

// Identical runs a frequency analysis over the sorted hand and returns the
// ascending list of group sizes with count > 1, without the pips.
func Identical(hand Hand) []Frequency {
	var groups []Frequency
	for ii := 0; ii < len(hand); {
		jj := ii + 1
		for jj < len(hand) && hand[jj] == hand[ii] {
			jj++
		}
		if count := jj - ii; count > 1 {
			groups = append(groups, Frequency(count))
		}
		ii = jj
	}
	// Runs of a sorted hand yield groups in pip order; the matcher needs
	// them in size order.
	for ii := 1; ii < len(groups); ii++ {
		for jj := ii; jj > 0 && groups[jj] < groups[jj-1]; jj-- {
			groups[jj], groups[jj-1] = groups[jj-1], groups[jj]
		}
	}
	return groups
}

// MatchIdentical scores the lower-section fields based on identical pips,
// e.g. Three of a Kind, Full House, Yahtzee.
//
// required is the sorted list of group sizes the hand must contain, e.g.
// [2, 3] for Full House. A present group larger than a requirement also
// matches (a Four of a Kind counts as a Three of a Kind), but each
// requirement consumes its group: a Yahtzee is not a Full House, the pips
// must differ. Returns value(hand) if every requirement is matched, else 0.
func MatchIdentical(required []Frequency, value func(Hand) Score, hand Hand) Score {
	groups := Identical(hand)
	next := 0
nextReq:
	for _, req := range required {
		for next < len(groups) {
			freq := groups[next]
			next++
			if freq >= req {
				continue nextReq
			}
		}
		return 0
	}
	return value(hand)
}

// Straight scores the straight fields: if the longest run of consecutive
// ascending distinct pips (duplicates skipped without breaking the run) is at
// least length, it returns score, else 0.
func Straight(length Frequency, score Score, hand Hand) Score {
	for ii := 0; ii < len(hand); ii++ {
		count := Frequency(1)
		expect := hand[ii]
		for jj := ii + 1; jj < len(hand); jj++ {
			if hand[jj] > expect+Pip(1) {
				break
			}
			if hand[jj] == expect+Pip(1) {
				count++
				expect = hand[jj]
			}
		}
		if count >= length {
			return score
		}
	}
	return 0
}
