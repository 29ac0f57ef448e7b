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

type PlantFamilyRepository struct {
	pool *pgxpool.Pool
}

func NewPlantFamilyRepository(pool *pgxpool.Pool) *PlantFamilyRepository {
	return &PlantFamilyRepository{pool: pool}
}

func (r *PlantFamilyRepository) Create(ctx context.Context, f *entity.PlantFamily) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO plant_families (title, slug) VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, f.Title, f.Slug)
	return mapError(row.Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt))
}

func (r *PlantFamilyRepository) GetBySlug(ctx context.Context, slug string) (*entity.PlantFamily, error) {
	f := &entity.PlantFamily{}
	row := r.pool.QueryRow(ctx, `
		SELECT f.id, f.title, f.slug, f.created_at, f.updated_at,
			(SELECT count(*) FROM plants p WHERE p.family_id = f.id)
		FROM plant_families f
		WHERE f.slug = $1
	`, slug)
	if err := row.Scan(&f.ID, &f.Title, &f.Slug, &f.CreatedAt, &f.UpdatedAt, &f.PlantCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *PlantFamilyRepository) List(ctx context.Context, p repository.ListParams) ([]entity.PlantFamily, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM plant_families WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
	`, p.Search).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT f.id, f.title, f.slug, f.created_at, f.updated_at,
			(SELECT count(*) FROM plants p WHERE p.family_id = f.id)
		FROM plant_families f
		WHERE ($1 = '' OR f.title ILIKE '%' || $1 || '%')
		ORDER BY f.title
		LIMIT $2 OFFSET $3
	`, p.Search, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.PlantFamily
	for rows.Next() {
		var f entity.PlantFamily
		if err := rows.Scan(&f.ID, &f.Title, &f.Slug, &f.CreatedAt, &f.UpdatedAt, &f.PlantCount); err != nil {
			return nil, 0, err
		}
		out = append(out, f)
	}
	return out, total, rows.Err()
}

func (r *PlantFamilyRepository) Update(ctx context.Context, f *entity.PlantFamily) error {
	f.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE plant_families SET title = $1, slug = $2, updated_at = $3 WHERE id = $4
	`, f.Title, f.Slug, f.UpdatedAt, f.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlantFamilyRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM plant_families WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlantFamilyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM plant_families WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

type PlantGenusRepository struct {
	pool *pgxpool.Pool
}

func NewPlantGenusRepository(pool *pgxpool.Pool) *PlantGenusRepository {
	return &PlantGenusRepository{pool: pool}
}

func (r *PlantGenusRepository) Create(ctx context.Context, g *entity.PlantGenus) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO plant_genuses (title, slug, family_id) VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, g.Title, g.Slug, g.FamilyID)
	return mapError(row.Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt))
}

func (r *PlantGenusRepository) GetBySlug(ctx context.Context, slug string) (*entity.PlantGenus, error) {
	g := &entity.PlantGenus{}
	row := r.pool.QueryRow(ctx, `
		SELECT g.id, g.title, g.slug, g.family_id, g.created_at, g.updated_at, f.title,
			(SELECT count(*) FROM plant_species s WHERE s.genus_id = g.id)
		FROM plant_genuses g
		JOIN plant_families f ON f.id = g.family_id
		WHERE g.slug = $1
	`, slug)
	if err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.FamilyID, &g.CreatedAt, &g.UpdatedAt,
		&g.FamilyTitle, &g.SpeciesCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *PlantGenusRepository) List(ctx context.Context, familyID int64, p repository.ListParams) ([]entity.PlantGenus, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM plant_genuses
		WHERE ($1 = 0 OR family_id = $1) AND ($2 = '' OR title ILIKE '%' || $2 || '%')
	`, familyID, p.Search).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT g.id, g.title, g.slug, g.family_id, g.created_at, g.updated_at, f.title,
			(SELECT count(*) FROM plant_species s WHERE s.genus_id = g.id)
		FROM plant_genuses g
		JOIN plant_families f ON f.id = g.family_id
		WHERE ($1 = 0 OR g.family_id = $1) AND ($2 = '' OR g.title ILIKE '%' || $2 || '%')
		ORDER BY g.title
		LIMIT $3 OFFSET $4
	`, familyID, p.Search, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.PlantGenus
	for rows.Next() {
		var g entity.PlantGenus
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.FamilyID, &g.CreatedAt, &g.UpdatedAt,
			&g.FamilyTitle, &g.SpeciesCount); err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	return out, total, rows.Err()
}

func (r *PlantGenusRepository) Update(ctx context.Context, g *entity.PlantGenus) error {
	g.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE plant_genuses SET title = $1, slug = $2, family_id = $3, updated_at = $4 WHERE id = $5
	`, g.Title, g.Slug, g.FamilyID, g.UpdatedAt, g.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlantGenusRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM plant_genuses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlantGenusRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM plant_genuses WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

type PlantSpeciesRepository struct {
	pool *pgxpool.Pool
}

func NewPlantSpeciesRepository(pool *pgxpool.Pool) *PlantSpeciesRepository {
	return &PlantSpeciesRepository{pool: pool}
}

func (r *PlantSpeciesRepository) Create(ctx context.Context, s *entity.PlantSpecies) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO plant_species (title, slug, genus_id) VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, s.Title, s.Slug, s.GenusID)
	return mapError(row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt))
}

func (r *PlantSpeciesRepository) GetBySlug(ctx context.Context, slug string) (*entity.PlantSpecies, error) {
	s := &entity.PlantSpecies{}
	row := r.pool.QueryRow(ctx, `
		SELECT s.id, s.title, s.slug, s.genus_id, s.created_at, s.updated_at, g.title
		FROM plant_species s
		JOIN plant_genuses g ON g.id = s.genus_id
		WHERE s.slug = $1
	`, slug)
	if err := row.Scan(&s.ID, &s.Title, &s.Slug, &s.GenusID, &s.CreatedAt, &s.UpdatedAt, &s.GenusTitle); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *PlantSpeciesRepository) List(ctx context.Context, genusID int64, p repository.ListParams) ([]entity.PlantSpecies, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM plant_species
		WHERE ($1 = 0 OR genus_id = $1) AND ($2 = '' OR title ILIKE '%' || $2 || '%')
	`, genusID, p.Search).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.title, s.slug, s.genus_id, s.created_at, s.updated_at, g.title
		FROM plant_species s
		JOIN plant_genuses g ON g.id = s.genus_id
		WHERE ($1 = 0 OR s.genus_id = $1) AND ($2 = '' OR s.title ILIKE '%' || $2 || '%')
		ORDER BY s.title
		LIMIT $3 OFFSET $4
	`, genusID, p.Search, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.PlantSpecies
	for rows.Next() {
		var s entity.PlantSpecies
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.GenusID, &s.CreatedAt, &s.UpdatedAt, &s.GenusTitle); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *PlantSpeciesRepository) Update(ctx context.Context, s *entity.PlantSpecies) error {
	s.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE plant_species SET title = $1, slug = $2, genus_id = $3, updated_at = $4 WHERE id = $5
	`, s.Title, s.Slug, s.GenusID, s.UpdatedAt, s.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlantSpeciesRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM plant_species WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlantSpeciesRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM plant_species WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

var (
	_ repository.PlantFamilyRepository  = (*PlantFamilyRepository)(nil)
	_ repository.PlantGenusRepository   = (*PlantGenusRepository)(nil)
	_ repository.PlantSpeciesRepository = (*PlantSpeciesRepository)(nil)
)
