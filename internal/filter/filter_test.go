package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/urban-atlas/internal/model"
)

func fixture() ([]model.UrbanArea, map[string]model.Classification) {
	records := []model.UrbanArea{
		{GEOID: "00001", Name: "Española, NM", FuncStat: "S", Type: model.UrbanTypeUA, LandKM2: 30},
		{GEOID: "00002", Name: "Big City, TX", FuncStat: "S", Type: model.UrbanTypeUA, LandKM2: 2500},
		{GEOID: "90001", Name: "Tiny Town, KS", FuncStat: "F", Type: model.UrbanTypeUC, LandKM2: 3},
	}
	classifications := map[string]model.Classification{
		"00001": {GEOID: "00001", Typology: "small"},
		"00002": {GEOID: "00002", Typology: "mega", Outlier: true},
		"90001": {GEOID: "90001", Typology: "small"},
	}
	return records, classifications
}

func TestApplyNoCriteriaKeepsAll(t *testing.T) {
	t.Parallel()

	records, cls := fixture()
	got := Filter{}.Apply(records, cls)
	assert.Len(t, got, 3)
	assert.Equal(t, records, got, "input order preserved")
}

func TestApplyByType(t *testing.T) {
	t.Parallel()

	records, cls := fixture()
	got := Filter{Types: []model.UrbanType{model.UrbanTypeUC}}.Apply(records, cls)
	assert.Len(t, got, 1)
	assert.Equal(t, "90001", got[0].GEOID)
}

func TestApplyByFuncStatAndMinLand(t *testing.T) {
	t.Parallel()

	records, cls := fixture()

	got := Filter{FuncStats: []string{"S"}, MinLandKM2: 100}.Apply(records, cls)
	assert.Len(t, got, 1)
	assert.Equal(t, "00002", got[0].GEOID)
}

func TestApplyOutliersOnly(t *testing.T) {
	t.Parallel()

	records, cls := fixture()
	got := Filter{OutliersOnly: true}.Apply(records, cls)
	assert.Len(t, got, 1)
	assert.True(t, cls[got[0].GEOID].Outlier)
}

func TestApplyByTypology(t *testing.T) {
	t.Parallel()

	records, cls := fixture()
	got := Filter{Typologies: []string{"small"}}.Apply(records, cls)
	assert.Len(t, got, 2)
}

func TestApplyNameQueryFoldsDiacritics(t *testing.T) {
	t.Parallel()

	records, cls := fixture()

	got := Filter{NameQuery: "espanola"}.Apply(records, cls)
	assert.Len(t, got, 1)
	assert.Equal(t, "Española, NM", got[0].Name)

	got = Filter{NameQuery: "BIG city"}.Apply(records, cls)
	assert.Len(t, got, 1)
	assert.Equal(t, "00002", got[0].GEOID)

	got = Filter{NameQuery: "nowhere"}.Apply(records, cls)
	assert.Empty(t, got)
}

func TestApplyMissingClassificationFailsDerivedChecks(t *testing.T) {
	t.Parallel()

	records, _ := fixture()
	got := Filter{OutliersOnly: true}.Apply(records, nil)
	assert.Empty(t, got)
}
