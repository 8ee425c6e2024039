package engine

import (
	"testing"

	"github.com/redactyl/piiredact/internal/detectors"
	"github.com/redactyl/piiredact/internal/types"
	"github.com/stretchr/testify/assert"
)

func match(def *detectors.Definition, text string) detectors.Match {
	return detectors.Match{Path: def.Name, Key: def.Name, Text: text, End: len(text), Def: def}
}

func TestEvaluateStandaloneAlone(t *testing.T) {
	d := Evaluate([]detectors.Match{match(detectors.Phone, "9876543210")}, PolicyThreshold)
	assert.True(t, d.Sensitive)
	assert.Len(t, d.Selected, 1)
	assert.Equal(t, []types.Category{types.CatPhone}, d.Categories)
}

func TestEvaluateSingleCombinationalCategory(t *testing.T) {
	ms := []detectors.Match{
		match(detectors.Email, "a@b.com"),
		match(detectors.Email, "c@d.com"),
	}
	for _, p := range []Policy{PolicyThreshold, PolicyMaskOnSensitive} {
		d := Evaluate(ms, p)
		assert.False(t, d.Sensitive, p.String())
		assert.Empty(t, d.Selected, p.String())
	}
}

func TestEvaluateTwoCategories(t *testing.T) {
	d := Evaluate([]detectors.Match{
		match(detectors.FullName, "John Doe"),
		match(detectors.Email, "john@x.com"),
	}, PolicyThreshold)
	assert.True(t, d.Sensitive)
	assert.Len(t, d.Selected, 2)
	assert.Equal(t, []types.Category{types.CatName, types.CatEmail}, d.Categories)
}

func TestEvaluateNonQualifyingIgnored(t *testing.T) {
	d := Evaluate([]detectors.Match{
		match(detectors.FullName, "John Doe"),
		match(detectors.Address, "12 Park Street"),
	}, PolicyThreshold)
	assert.False(t, d.Sensitive)
	assert.Empty(t, d.Selected)
}

func TestEvaluatePolicies(t *testing.T) {
	ms := []detectors.Match{
		match(detectors.FullName, "John Doe"),
		match(detectors.Phone, "9876543210"),
	}

	d := Evaluate(ms, PolicyThreshold)
	assert.True(t, d.Sensitive)
	if assert.Len(t, d.Selected, 1) {
		assert.Equal(t, "phone_number", d.Selected[0].Def.Name)
	}

	d = Evaluate(ms, PolicyMaskOnSensitive)
	assert.True(t, d.Sensitive)
	assert.Len(t, d.Selected, 2)
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{PolicyThreshold, PolicyMaskOnSensitive} {
		got, err := ParsePolicy(p.String())
		assert.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := ParsePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, PolicyThreshold, got)
	_, err = ParsePolicy("always")
	assert.Error(t, err)
}

func TestEvaluateWholeQualifyingCategorySelected(t *testing.T) {
	d := Evaluate([]detectors.Match{
		match(detectors.FullName, "John Doe"),
		match(detectors.Address, "12 Park Street, Kolkata 700016"),
		match(detectors.Address, "4 Lake Road"),
		match(detectors.DeviceID, "DEV12"),
	}, PolicyThreshold)
	assert.True(t, d.Sensitive)
	assert.Len(t, d.Selected, 3)
	assert.Equal(t, []types.Category{types.CatName, types.CatAddress}, d.Categories)
}
