package repository

import (
	"context"

	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
)

// ListParams paginates and orders list queries.
type ListParams struct {
	Limit  int
	Offset int
	Search string
}

// PlantFilter narrows plant listings.
type PlantFilter struct {
	ListParams
	FamilySlug  string
	GenusSlug   string
	Duration    string
	GrowthHabit string
}

type PlantFamilyRepository interface {
	Create(ctx context.Context, f *entity.PlantFamily) error
	GetBySlug(ctx context.Context, slug string) (*entity.PlantFamily, error)
	List(ctx context.Context, p ListParams) ([]entity.PlantFamily, int, error)
	Update(ctx context.Context, f *entity.PlantFamily) error
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type PlantGenusRepository interface {
	Create(ctx context.Context, g *entity.PlantGenus) error
	GetBySlug(ctx context.Context, slug string) (*entity.PlantGenus, error)
	List(ctx context.Context, familyID int64, p ListParams) ([]entity.PlantGenus, int, error)
	Update(ctx context.Context, g *entity.PlantGenus) error
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type PlantSpeciesRepository interface {
	Create(ctx context.Context, s *entity.PlantSpecies) error
	GetBySlug(ctx context.Context, slug string) (*entity.PlantSpecies, error)
	List(ctx context.Context, genusID int64, p ListParams) ([]entity.PlantSpecies, int, error)
	Update(ctx context.Context, s *entity.PlantSpecies) error
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type PlantRepository interface {
	Create(ctx context.Context, p *entity.Plant) error
	GetByID(ctx context.Context, id int64) (*entity.Plant, error)
	// GetByScientificName looks an entry up by genus title and optional
	// species title, as reported by the classifier.
	GetByScientificName(ctx context.Context, genus, species string) (*entity.Plant, error)
	List(ctx context.Context, f PlantFilter) ([]entity.Plant, int, error)
	Update(ctx context.Context, p *entity.Plant) error
	Delete(ctx context.Context, id int64) error
	IncrementObservations(ctx context.Context, id int64) error
}

type PlantImageRepository interface {
	Create(ctx context.Context, img *entity.PlantImage) error
	ListByPlant(ctx context.Context, plantID int64) ([]entity.PlantImage, error)
	Delete(ctx context.Context, id int64) error
}
