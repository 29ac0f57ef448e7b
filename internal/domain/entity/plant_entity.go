package entity

import (
	"strings"
	"time"
)

// Plant duration choices.
const (
	DurationAnnual    = "annual"
	DurationBiennial  = "biennial"
	DurationPerennial = "perennial"
	DurationEphemeral = "ephemeral"
	DurationDeciduous = "deciduous"
	DurationEvergreen = "evergreen"
)

// Plant growth habit choices.
const (
	GrowthHerb      = "herb"
	GrowthShrub     = "shrub"
	GrowthTree      = "tree"
	GrowthGraminoid = "graminoid"
	GrowthSubshrub  = "subshrub"
	GrowthVine      = "vine"
)

// Plant image parts.
const (
	PartFlower = "flower"
	PartLeaf   = "leaf"
	PartFruit  = "fruit"
	PartBark   = "bark"
	PartOther  = "other"
)

// PlantFamily is the top level of the taxonomy.
type PlantFamily struct {
	ID        int64
	Title     string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time

	// populated on reads
	PlantCount int
}

// PlantGenus belongs to a family.
type PlantGenus struct {
	ID        int64
	Title     string
	Slug      string
	FamilyID  int64
	CreatedAt time.Time
	UpdatedAt time.Time

	FamilyTitle  string
	SpeciesCount int
}

// PlantSpecies belongs to a genus.
type PlantSpecies struct {
	ID        int64
	Title     string
	Slug      string
	GenusID   int64
	CreatedAt time.Time
	UpdatedAt time.Time

	GenusTitle string
}

// Plant is a catalog entry. Species is optional: an entry may be identified
// only to genus level.
type Plant struct {
	ID                    int64
	CommonNames           []string
	CommonNamesNE         []string
	Description           string
	DescriptionNE         string
	MedicinalProperties   string
	MedicinalPropertiesNE string
	Duration              string
	GrowthHabit           string
	WikipediaLink         string
	OtherResourceLinks    []string
	ObservationCount      int
	FamilyID              int64
	GenusID               int64
	SpeciesID             *int64
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// joined titles, populated on reads
	FamilyTitle  string
	GenusTitle   string
	SpeciesTitle string
	Images       []PlantImage
}

// ScientificName is "<genus> <species>" with the species part omitted when
// the entry is not identified to species level.
func (p *Plant) ScientificName() string {
	return strings.TrimSpace(p.GenusTitle + " " + p.SpeciesTitle)
}

// PlantImage is a photo of a single plant part.
type PlantImage struct {
	ID        int64
	PlantID   int64
	Part      string
	URL       string
	Default   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidDuration reports whether d is one of the duration choices.
func ValidDuration(d string) bool {
	switch d {
	case DurationAnnual, DurationBiennial, DurationPerennial, DurationEphemeral, DurationDeciduous, DurationEvergreen:
		return true
	}
	return false
}

// ValidGrowthHabit reports whether g is one of the growth habit choices.
func ValidGrowthHabit(g string) bool {
	switch g {
	case GrowthHerb, GrowthShrub, GrowthTree, GrowthGraminoid, GrowthSubshrub, GrowthVine:
		return true
	}
	return false
}

// ValidPart reports whether p is one of the plant image parts.
func ValidPart(p string) bool {
	switch p {
	case PartFlower, PartLeaf, PartFruit, PartBark, PartOther:
		return true
	}
	return false
}
