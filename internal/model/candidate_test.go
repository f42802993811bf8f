package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatesSortDeterminism(t *testing.T) {
	build := func() Candidates {
		return Candidates{
			{HtsCode: "7013375000", Level: LevelStatistical, MatchScore: 80},
			{HtsCode: "6912004810", Level: LevelStatistical, MatchScore: 145},
			{HtsCode: "6912004820", Level: LevelStatistical, MatchScore: 145},
			{HtsCode: "691200", Level: LevelSubheading, MatchScore: 145},
			{HtsCode: "3924", Level: LevelHeading, MatchScore: -20},
		}
	}

	c := build()
	c.Sort()

	// Score first, then depth, then code breaks the remaining tie.
	assert.Equal(t, "6912004810", c[0].HtsCode)
	assert.Equal(t, "6912004820", c[1].HtsCode)
	assert.Equal(t, "691200", c[2].HtsCode)
	assert.Equal(t, "7013375000", c[3].HtsCode)
	assert.Equal(t, "3924", c[4].HtsCode)

	// Shuffled input converges to the same order.
	d := build()
	d.Swap(0, 4)
	d.Swap(1, 3)
	d.Sort()
	assert.Equal(t, c, d)
}

func TestCandidatesTop(t *testing.T) {
	var empty Candidates
	assert.Nil(t, empty.Top())

	c := Candidates{
		{HtsCode: "42", MatchScore: 10, Level: LevelChapter},
		{HtsCode: "4202929060", MatchScore: 90, Level: LevelStatistical},
	}
	top := c.Top()
	require.NotNil(t, top)
	assert.Equal(t, "4202929060", top.HtsCode)

	assert.Len(t, c.TopN(5), 2)
	assert.Len(t, c.TopN(1), 1)
	assert.Empty(t, c.TopN(0))
}
