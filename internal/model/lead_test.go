package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityBand_Thresholds(t *testing.T) {
	assert.Equal(t, BandHot, PriorityBand("70"))
	assert.Equal(t, BandHot, PriorityBand("100"))
	assert.Equal(t, BandWarm, PriorityBand("69"))
	assert.Equal(t, BandWarm, PriorityBand("40"))
	assert.Equal(t, BandCold, PriorityBand("39"))
	assert.Equal(t, BandCold, PriorityBand("0"))
	assert.Equal(t, BandCold, PriorityBand(""))
}

func TestPriorityBand_NonNumericIsLiteral(t *testing.T) {
	// Legacy rows sometimes hold the band word itself.
	assert.Equal(t, "hot", PriorityBand("Hot"))
	assert.Equal(t, "whatever", PriorityBand("WHATEVER"))
}

func TestSource_Default(t *testing.T) {
	l := Lead{}
	assert.Equal(t, DefaultSource, l.Source())
	l.LeadSource = "Webinar"
	assert.Equal(t, "Webinar", l.Source())
}

func TestHasTags(t *testing.T) {
	assert.False(t, (&Lead{}).HasTags())
	assert.False(t, (&Lead{Tags: []string{}}).HasTags())
	assert.True(t, (&Lead{Tags: []string{"vip"}}).HasTags())
}

func TestScoreInt(t *testing.T) {
	l := Lead{LeadScore: " 85 "}
	n, ok := l.ScoreInt()
	assert.True(t, ok)
	assert.Equal(t, 85, n)

	l.LeadScore = "hot"
	_, ok = l.ScoreInt()
	assert.False(t, ok)
}
