package filter

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	t.Run("empty string is no filter", func(t *testing.T) {
		m, err := ParseMonth("")
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("valid month", func(t *testing.T) {
		m, err := ParseMonth("2024-06")
		require.NoError(t, err)
		assert.Equal(t, Month{Year: 2024, Month: time.June}, m)
		assert.Equal(t, "2024-06", m.String())
	})

	t.Run("invalid month", func(t *testing.T) {
		_, err := ParseMonth("06/2024")
		assert.ErrorIs(t, err, ErrInvalidMonth)
	})
}

func TestMonth_Contains_IgnoresDayOfMonth(t *testing.T) {
	june := Month{Year: 2024, Month: time.June}

	assert.True(t, june.Contains(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, june.Contains(time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC)))
	assert.False(t, june.Contains(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, june.Contains(time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestMonth_AddMonths(t *testing.T) {
	m := Month{Year: 2024, Month: time.February}

	assert.Equal(t, Month{Year: 2023, Month: time.December}, m.AddMonths(-2))
	assert.Equal(t, Month{Year: 2025, Month: time.January}, m.AddMonths(11))
	assert.Equal(t, m, m.AddMonths(0))
}

func TestMatchesSearch(t *testing.T) {
	assert.True(t, MatchesSearch("", "Aluguel", "Moradia"))
	assert.True(t, MatchesSearch("alu", "Aluguel", "Moradia"))
	assert.True(t, MatchesSearch("MORA", "Aluguel", "Moradia"))
	assert.True(t, MatchesSearch("guel", "Aluguel", "Moradia"), "substring, not whole word")
	assert.False(t, MatchesSearch("internet", "Aluguel", "Moradia"))
}

func TestMatchesCategory(t *testing.T) {
	assert.True(t, MatchesCategory("", "Moradia"))
	assert.True(t, MatchesCategory(AllCategories, "Moradia"))
	assert.True(t, MatchesCategory("Moradia", "Moradia"))
	assert.False(t, MatchesCategory("moradia", "Moradia"), "category match is exact")
}

func TestCriteria_Matches(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, Criteria{}.Matches("Aluguel", "Moradia", date))
	assert.True(t, Criteria{Search: "alu", Month: Month{2024, time.June}, Category: "Moradia"}.Matches("Aluguel", "Moradia", date))
	assert.False(t, Criteria{Search: "alu", Month: Month{2024, time.July}}.Matches("Aluguel", "Moradia", date))
	assert.False(t, Criteria{Search: "alu", Category: "Lazer"}.Matches("Aluguel", "Moradia", date))
}

func TestFromQuery(t *testing.T) {
	t.Run("reads all criteria", func(t *testing.T) {
		c, err := FromQuery(url.Values{"search": {"net"}, "month": {"2024-06"}, "category": {"Moradia"}})
		require.NoError(t, err)
		assert.Equal(t, Criteria{Search: "net", Month: Month{2024, time.June}, Category: "Moradia"}, c)
	})

	t.Run("no parameters is an empty criteria", func(t *testing.T) {
		c, err := FromQuery(url.Values{})
		require.NoError(t, err)
		assert.Equal(t, Criteria{}, c)
	})

	t.Run("bad month", func(t *testing.T) {
		_, err := FromQuery(url.Values{"month": {"june"}})
		assert.ErrorIs(t, err, ErrInvalidMonth)
	})
}

func TestApply(t *testing.T) {
	in := []int{5, 1, 4, 2, 3}

	even := Apply(in, func(i int) bool { return i%2 == 0 })
	all := Apply(in, func(int) bool { return true })

	assert.Equal(t, []int{4, 2}, even)
	assert.Equal(t, in, all)
	assert.Equal(t, even, Apply(even, func(i int) bool { return i%2 == 0 }), "idempotent")
	assert.Empty(t, Apply([]int(nil), func(int) bool { return true }))
}
