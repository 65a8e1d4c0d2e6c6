package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/urban-atlas/internal/model"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "Española,…", truncate("Española, NM area", 10))
}

func TestSplitAndTrim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"S", "F"}, splitAndTrim(" S , F ,"))
	assert.Empty(t, splitAndTrim(""))
	assert.Empty(t, splitAndTrim(" , , "))
}

func TestParseTypes(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]model.UrbanType{model.UrbanTypeUA, model.UrbanTypeUC},
		parseTypes("ua, uc"))
	assert.Equal(t,
		[]model.UrbanType{model.UrbanTypeUC},
		parseTypes("URBAN_CLUSTER"))
	assert.Nil(t, parseTypes("unknown"))
	assert.Nil(t, parseTypes(""))
}
