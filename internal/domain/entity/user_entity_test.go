package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "Suraj@example.com", NormalizeEmail("Suraj@Example.COM"), "only the domain part is lowercased")
	assert.Equal(t, "a@b.c", NormalizeEmail(" a@B.C "))
	assert.Equal(t, "not-an-email", NormalizeEmail("not-an-email"))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "s*****j@example.com", MaskEmail("suraj@example.com"))
	assert.Equal(t, "a@b.c", MaskEmail("a@b.c"), "too short to mask")
}

func TestFullName(t *testing.T) {
	u := User{FirstName: "Suraj", LastName: "Karki"}
	assert.Equal(t, "Suraj Karki", u.FullName())
}

func TestScientificName(t *testing.T) {
	p := Plant{GenusTitle: "Ocimum", SpeciesTitle: "tenuiflorum"}
	assert.Equal(t, "Ocimum tenuiflorum", p.ScientificName())

	genusOnly := Plant{GenusTitle: "Mentha"}
	assert.Equal(t, "Mentha", genusOnly.ScientificName())
}

func TestTaxonomyChoices(t *testing.T) {
	assert.True(t, ValidDuration(DurationPerennial))
	assert.False(t, ValidDuration("sometimes"))
	assert.True(t, ValidGrowthHabit(GrowthHerb))
	assert.False(t, ValidGrowthHabit("fungus"))
	assert.True(t, ValidPart(PartLeaf))
	assert.False(t, ValidPart("root"))
}
