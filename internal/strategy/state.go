package strategy

import (
	"strconv"
	"strings"

	. "github.com/janpfeifer/yahtzeeGo/internal/game"
	"github.com/janpfeifer/yahtzeeGo/internal/rules"
)

// State is everything about a player that the strategy depends on. It is
// passed by value; Used is the only reference field and is cloned on every
// update, so a callee never mutates its caller's state.
type State struct {
	// Score holds the running totals of the upper and lower section.
	Score [2]Score
	// Used marks the fields already contributing to Score.
	Used ScoreCard
	// ScoredYahtzee flips to true when a positive score is written into the
	// lower-section field at YahtzeeIndex (the Yahtzee of the regular
	// table) and never flips back; it gates the Yahtzee-bonus rule.
	ScoredYahtzee bool
	// Chips are the reroll chips still available.
	Chips Chips
}

// NewState returns the state of a player at the start of a game under the
// given rules.
func NewState(r *rules.Rules) State {
	return State{
		Used: ScoreCard{
			make([]bool, len(r.Fields[US])),
			make([]bool, len(r.Fields[LS])),
		},
		Chips: r.Chips,
	}
}

// Clone returns a copy whose Used card can be updated independently.
func (s State) Clone() State {
	s.Used = s.Used.Clone()
	return s
}

// Compact returns the cache-key encoding of the state:
// "score0,score1,<upper digits>,<lower digits><scored digit>,<chips>".
// The scored-Yahtzee digit concatenating onto the lower-section digits is
// the established wire format; changing it would invalidate every cache.
func (s State) Compact() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(s.Score[US])))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(int(s.Score[LS])))
	sb.WriteByte(',')
	sb.WriteString(s.Used.Digits(US))
	sb.WriteByte(',')
	sb.WriteString(s.Used.Digits(LS))
	if s.ScoredYahtzee {
		sb.WriteByte('1')
	} else {
		sb.WriteByte('0')
	}
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(int(s.Chips)))
	return sb.String()
}
