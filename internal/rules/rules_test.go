package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/janpfeifer/yahtzeeGo/internal/game"
)

type fieldCase struct {
	hand Hand
	want Score
}

func checkFieldTable(t *testing.T, fields []SectionRule, cases []fieldCase) {
	t.Helper()
	require.Len(t, cases, len(fields))
	for ii, c := range cases {
		require.Equalf(t, c.want, fields[ii].Score(c.hand),
			"field #%d (%s) on hand %v", ii, fields[ii].Name, c.hand)
	}
}

func TestRegularRules(t *testing.T) {
	r, err := New(false, ForcedJoker)
	require.NoError(t, err)

	require.Equal(t, byte('a'), r.ShortName)
	require.Equal(t, byte('a'), r.Dice.ShortName)
	require.Equal(t, Dice{{Die: D6, Count: 5}}, r.Dice.Dice)
	require.Equal(t, Chips(0), r.Chips)
	require.Equal(t, USBonus{Threshold: 63, Bonus: 35}, r.USBonus)
	require.True(t, r.HasYahtzeeBonus())

	checkFieldTable(t, r.Fields[US], []fieldCase{
		{Hand{1, 1, 1, 1, 2}, 4},
		{Hand{1, 2, 2, 2, 2}, 8},
		{Hand{1, 3, 3, 3, 3}, 12},
		{Hand{1, 4, 4, 4, 4}, 16},
		{Hand{1, 5, 5, 5, 5}, 20},
		{Hand{1, 6, 6, 6, 6}, 24},
	})
	checkFieldTable(t, r.Fields[LS], []fieldCase{
		{Hand{1, 1, 1, 2, 3}, 8},  // Three of a Kind
		{Hand{1, 1, 1, 1, 2}, 6},  // Four of a Kind
		{Hand{1, 1, 1, 2, 2}, 25}, // Full House
		{Hand{1, 2, 3, 4, 6}, 30}, // Small Straight
		{Hand{1, 2, 3, 4, 5}, 40}, // Large Straight
		{Hand{1, 1, 1, 1, 1}, 50}, // Yahtzee
		{Hand{1, 1, 1, 1, 2}, 6},  // Chance
	})
	require.Equal(t, "Yahtzee", r.Fields[LS][YahtzeeIndex].Name)
}

func TestExtremeRules(t *testing.T) {
	r, err := New(true, None)
	require.NoError(t, err)

	require.Equal(t, byte('f'), r.ShortName)
	require.Equal(t, byte('b'), r.Dice.ShortName)
	require.Equal(t, Dice{{Die: D6, Count: 5}, {Die: D10, Count: 1}}, r.Dice.Dice)
	require.Equal(t, Chips(3), r.Chips)
	require.Equal(t, USBonus{Threshold: 73, Bonus: 45}, r.USBonus)
	require.False(t, r.HasYahtzeeBonus())

	checkFieldTable(t, r.Fields[US], []fieldCase{
		{Hand{1, 1, 1, 1, 2, 2}, 4},
		{Hand{1, 1, 2, 2, 2, 2}, 8},
		{Hand{1, 1, 3, 3, 3, 3}, 12},
		{Hand{1, 1, 4, 4, 4, 4}, 16},
		{Hand{1, 1, 5, 5, 5, 5}, 20},
		{Hand{1, 1, 6, 6, 6, 6}, 24},
	})
	require.Len(t, r.Fields[LS], 16)
	checkFieldTable(t, r.Fields[LS], []fieldCase{
		{Hand{1, 1, 1, 2, 3, 4}, 12}, // Three of a Kind
		{Hand{1, 1, 1, 1, 2, 3}, 9},  // Four of a Kind
		{Hand{1, 1, 2, 2, 3, 4}, 13}, // Two Pairs
		{Hand{1, 1, 2, 2, 3, 3}, 35}, // Three Pairs
		{Hand{1, 1, 1, 2, 2, 2}, 45}, // Two Triples
		{Hand{1, 1, 1, 2, 2, 3}, 25}, // Full House
		{Hand{1, 1, 1, 1, 2, 2}, 45}, // Grand Full House
		{Hand{1, 1, 2, 2, 3, 4}, 30}, // Small Straight
		{Hand{1, 1, 2, 3, 4, 5}, 40}, // Large Straight
		{Hand{1, 2, 3, 4, 5, 6}, 50}, // Highway
		{Hand{1, 1, 1, 1, 1, 2}, 50}, // Yahtzee
		{Hand{1, 1, 1, 1, 1, 1}, 75}, // Yahtzee Extreme
		{Hand{1, 1, 1, 2, 2, 3}, 40}, // 10 or less
		{Hand{5, 5, 5, 5, 5, 8}, 40}, // 33 or more
		{Hand{1, 1, 1, 1, 2, 3}, 9},  // Chance
		{Hand{1, 1, 1, 1, 2, 3}, 18}, // Super Chance
	})
}

func TestInvalidConfiguration(t *testing.T) {
	for _, bonus := range []BonusRules{ForcedJoker, FreeJoker, Original, Kniffel} {
		_, err := New(true, bonus)
		require.Error(t, err)
	}
	_, err := New(true, None)
	require.NoError(t, err)
}

func TestShortNamesUnique(t *testing.T) {
	seen := make(map[byte]string)
	for _, name := range VariantNames() {
		r, err := ByName(name)
		require.NoError(t, err)
		previous, found := seen[r.ShortName]
		require.Falsef(t, found, "short name %q assigned to both %q and %q", r.ShortName, previous, name)
		seen[r.ShortName] = name
	}
	require.Len(t, seen, 6)
}

func TestByName(t *testing.T) {
	r, err := ByName("kniffel")
	require.NoError(t, err)
	require.Equal(t, Kniffel.ShortName, r.YahtzeeBonus.ShortName)

	_, err = ByName("yacht")
	require.ErrorContains(t, err, "unknown game")

	require.Equal(t, []string{"extreme", "forced", "free", "kniffel", "none", "original"}, VariantNames())
}
