package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
	"github.com/surajkarki66/MediLeaf-backend/internal/domain/repository"
)

const plantSelect = `
	SELECT p.id, p.common_names, p.common_names_ne, p.description, p.description_ne,
		p.medicinal_properties, p.medicinal_properties_ne, p.duration, p.growth_habit,
		p.wikipedia_link, p.other_resource_links, p.observation_count,
		p.family_id, p.genus_id, p.species_id, p.created_at, p.updated_at,
		f.title, g.title, COALESCE(s.title, '')
	FROM plants p
	JOIN plant_families f ON f.id = p.family_id
	JOIN plant_genuses g ON g.id = p.genus_id
	LEFT JOIN plant_species s ON s.id = p.species_id`

type PlantRepository struct {
	pool *pgxpool.Pool
}

func NewPlantRepository(pool *pgxpool.Pool) *PlantRepository {
	return &PlantRepository{pool: pool}
}

func (r *PlantRepository) Create(ctx context.Context, p *entity.Plant) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO plants (common_names, common_names_ne, description, description_ne,
			medicinal_properties, medicinal_properties_ne, duration, growth_habit,
			wikipedia_link, other_resource_links, family_id, genus_id, species_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, observation_count, created_at, updated_at
	`, p.CommonNames, p.CommonNamesNE, p.Description, p.DescriptionNE,
		p.MedicinalProperties, p.MedicinalPropertiesNE, p.Duration, p.GrowthHabit,
		p.WikipediaLink, p.OtherResourceLinks, p.FamilyID, p.GenusID, p.SpeciesID)
	return mapError(row.Scan(&p.ID, &p.ObservationCount, &p.CreatedAt, &p.UpdatedAt))
}

func (r *PlantRepository) GetByID(ctx context.Context, id int64) (*entity.Plant, error) {
	p, err := r.getOne(ctx, plantSelect+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PlantRepository) GetByScientificName(ctx context.Context, genus, species string) (*entity.Plant, error) {
	var (
		p   *entity.Plant
		err error
	)
	if species == "" {
		p, err = r.getOne(ctx, plantSelect+` WHERE lower(g.title) = lower($1) AND p.species_id IS NULL`, genus)
	} else {
		p, err = r.getOne(ctx, plantSelect+` WHERE lower(g.title) = lower($1) AND lower(s.title) = lower($2)`, genus, species)
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PlantRepository) getOne(ctx context.Context, query string, args ...any) (*entity.Plant, error) {
	p := &entity.Plant{}
	row := r.pool.QueryRow(ctx, query, args...)
	if err := scanPlant(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanPlant(row pgx.Row, p *entity.Plant) error {
	return row.Scan(&p.ID, &p.CommonNames, &p.CommonNamesNE, &p.Description, &p.DescriptionNE,
		&p.MedicinalProperties, &p.MedicinalPropertiesNE, &p.Duration, &p.GrowthHabit,
		&p.WikipediaLink, &p.OtherResourceLinks, &p.ObservationCount,
		&p.FamilyID, &p.GenusID, &p.SpeciesID, &p.CreatedAt, &p.UpdatedAt,
		&p.FamilyTitle, &p.GenusTitle, &p.SpeciesTitle)
}

func (r *PlantRepository) attachImages(ctx context.Context, p *entity.Plant) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, plant_id, part, url, is_default, created_at, updated_at
		FROM plant_images WHERE plant_id = $1 ORDER BY is_default DESC, id
	`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var img entity.PlantImage
		if err := rows.Scan(&img.ID, &img.PlantID, &img.Part, &img.URL, &img.Default,
			&img.CreatedAt, &img.UpdatedAt); err != nil {
			return err
		}
		p.Images = append(p.Images, img)
	}
	return rows.Err()
}

func (r *PlantRepository) List(ctx context.Context, f repository.PlantFilter) ([]entity.Plant, int, error) {
	where := `
		WHERE ($1 = '' OR fam.slug = $1)
		AND ($2 = '' OR gen.slug = $2)
		AND ($3 = '' OR p.duration = $3)
		AND ($4 = '' OR p.growth_habit = $4)
		AND ($5 = '' OR gen.title ILIKE '%' || $5 || '%'
			OR EXISTS (SELECT 1 FROM unnest(p.common_names) cn WHERE cn ILIKE '%' || $5 || '%'))`
	args := []any{f.FamilySlug, f.GenusSlug, f.Duration, f.GrowthHabit, f.Search}

	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM plants p
		JOIN plant_families fam ON fam.id = p.family_id
		JOIN plant_genuses gen ON gen.id = p.genus_id`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.common_names, p.common_names_ne, p.description, p.description_ne,
			p.medicinal_properties, p.medicinal_properties_ne, p.duration, p.growth_habit,
			p.wikipedia_link, p.other_resource_links, p.observation_count,
			p.family_id, p.genus_id, p.species_id, p.created_at, p.updated_at,
			fam.title, gen.title, COALESCE(s.title, '')
		FROM plants p
		JOIN plant_families fam ON fam.id = p.family_id
		JOIN plant_genuses gen ON gen.id = p.genus_id
		LEFT JOIN plant_species s ON s.id = p.species_id`+where+`
		ORDER BY gen.title, s.title NULLS FIRST
		LIMIT $6 OFFSET $7
	`, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Plant
	for rows.Next() {
		var p entity.Plant
		if err := scanPlant(rows, &p); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for i := range out {
		if err := r.attachImages(ctx, &out[i]); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

func (r *PlantRepository) Update(ctx context.Context, p *entity.Plant) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE plants
		SET common_names = $1, common_names_ne = $2, description = $3, description_ne = $4,
			medicinal_properties = $5, medicinal_properties_ne = $6, duration = $7,
			growth_habit = $8, wikipedia_link = $9, other_resource_links = $10,
			family_id = $11, genus_id = $12, species_id = $13, updated_at = $14
		WHERE id = $15
	`, p.CommonNames, p.CommonNamesNE, p.Description, p.DescriptionNE,
		p.MedicinalProperties, p.MedicinalPropertiesNE, p.Duration, p.GrowthHabit,
		p.WikipediaLink, p.OtherResourceLinks, p.FamilyID, p.GenusID, p.SpeciesID,
		p.UpdatedAt, p.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlantRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM plants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlantRepository) IncrementObservations(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE plants SET observation_count = observation_count + 1 WHERE id = $1
	`, id)
	return err
}

type PlantImageRepository struct {
	pool *pgxpool.Pool
}

func NewPlantImageRepository(pool *pgxpool.Pool) *PlantImageRepository {
	return &PlantImageRepository{pool: pool}
}

func (r *PlantImageRepository) Create(ctx context.Context, img *entity.PlantImage) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO plant_images (plant_id, part, url, is_default)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, img.PlantID, img.Part, img.URL, img.Default)
	return mapError(row.Scan(&img.ID, &img.CreatedAt, &img.UpdatedAt))
}

func (r *PlantImageRepository) ListByPlant(ctx context.Context, plantID int64) ([]entity.PlantImage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, plant_id, part, url, is_default, created_at, updated_at
		FROM plant_images WHERE plant_id = $1 ORDER BY is_default DESC, id
	`, plantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.PlantImage
	for rows.Next() {
		var img entity.PlantImage
		if err := rows.Scan(&img.ID, &img.PlantID, &img.Part, &img.URL, &img.Default,
			&img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *PlantImageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM plant_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var (
	_ repository.PlantRepository      = (*PlantRepository)(nil)
	_ repository.PlantImageRepository = (*PlantImageRepository)(nil)
)
