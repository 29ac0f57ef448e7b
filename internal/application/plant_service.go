package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
	repo "github.com/surajkarki66/MediLeaf-backend/internal/domain/repository"
	"github.com/surajkarki66/MediLeaf-backend/pkg/helpers"
	"github.com/surajkarki66/MediLeaf-backend/pkg/slug"
)

var (
	ErrPlantNotFound   = errors.New("plant not found")
	ErrTaxonNotFound   = errors.New("taxon not found")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidGrowth   = errors.New("invalid growth habit")
	ErrInvalidPart     = errors.New("invalid plant part")
)

// PlantService manages the taxonomy catalog: families, genuses, species,
// plants and their images. Plant documents are mirrored to Elasticsearch
// for search; GCS holds the image files.
type PlantService struct {
	Families  repo.PlantFamilyRepository
	Genuses   repo.PlantGenusRepository
	Species   repo.PlantSpeciesRepository
	Plants    repo.PlantRepository
	Images    repo.PlantImageRepository
	GCS       *storage.Client
	GCSBucket string
	ES        *elasticsearch.Client
	ESIndex   string
	Logger    *logrus.Logger
}

func NewPlantService(families repo.PlantFamilyRepository, genuses repo.PlantGenusRepository, species repo.PlantSpeciesRepository, plants repo.PlantRepository, images repo.PlantImageRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *PlantService {
	return &PlantService{
		Families:  families,
		Genuses:   genuses,
		Species:   species,
		Plants:    plants,
		Images:    images,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		ES:        es,
		ESIndex:   esIndex,
		Logger:    logger,
	}
}

// CreateFamily slugifies the title, retrying with a random suffix on
// collision.
func (s *PlantService) CreateFamily(ctx context.Context, title string) (*entity.PlantFamily, error) {
	sl, err := slug.Unique(ctx, slug.Make(title), s.Families.SlugExists)
	if err != nil {
		return nil, err
	}
	f := &entity.PlantFamily{Title: title, Slug: sl}
	if err := s.Families.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *PlantService) GetFamily(ctx context.Context, slugStr string) (*entity.PlantFamily, error) {
	f, err := s.Families.GetBySlug(ctx, slugStr)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTaxonNotFound
	}
	return f, err
}

func (s *PlantService) ListFamilies(ctx context.Context, p repo.ListParams) ([]entity.PlantFamily, int, error) {
	return s.Families.List(ctx, clampList(p))
}

func (s *PlantService) UpdateFamily(ctx context.Context, slugStr, title string) (*entity.PlantFamily, error) {
	f, err := s.GetFamily(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	if title != "" && title != f.Title {
		f.Title = title
		f.Slug, err = slug.Unique(ctx, slug.Make(title), s.Families.SlugExists)
		if err != nil {
			return nil, err
		}
	}
	if err := s.Families.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *PlantService) DeleteFamily(ctx context.Context, slugStr string) error {
	f, err := s.GetFamily(ctx, slugStr)
	if err != nil {
		return err
	}
	return s.Families.Delete(ctx, f.ID)
}

func (s *PlantService) CreateGenus(ctx context.Context, title, familySlug string) (*entity.PlantGenus, error) {
	f, err := s.GetFamily(ctx, familySlug)
	if err != nil {
		return nil, err
	}
	sl, err := slug.Unique(ctx, slug.Make(title), s.Genuses.SlugExists)
	if err != nil {
		return nil, err
	}
	g := &entity.PlantGenus{Title: title, Slug: sl, FamilyID: f.ID, FamilyTitle: f.Title}
	if err := s.Genuses.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *PlantService) GetGenus(ctx context.Context, slugStr string) (*entity.PlantGenus, error) {
	g, err := s.Genuses.GetBySlug(ctx, slugStr)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTaxonNotFound
	}
	return g, err
}

func (s *PlantService) ListGenuses(ctx context.Context, familySlug string, p repo.ListParams) ([]entity.PlantGenus, int, error) {
	var familyID int64
	if familySlug != "" {
		f, err := s.GetFamily(ctx, familySlug)
		if err != nil {
			return nil, 0, err
		}
		familyID = f.ID
	}
	return s.Genuses.List(ctx, familyID, clampList(p))
}

func (s *PlantService) UpdateGenus(ctx context.Context, slugStr, title string) (*entity.PlantGenus, error) {
	g, err := s.GetGenus(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	if title != "" && title != g.Title {
		g.Title = title
		g.Slug, err = slug.Unique(ctx, slug.Make(title), s.Genuses.SlugExists)
		if err != nil {
			return nil, err
		}
	}
	if err := s.Genuses.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *PlantService) DeleteGenus(ctx context.Context, slugStr string) error {
	g, err := s.GetGenus(ctx, slugStr)
	if err != nil {
		return err
	}
	return s.Genuses.Delete(ctx, g.ID)
}

func (s *PlantService) CreateSpecies(ctx context.Context, title, genusSlug string) (*entity.PlantSpecies, error) {
	g, err := s.GetGenus(ctx, genusSlug)
	if err != nil {
		return nil, err
	}
	// species slug carries the genus so "Ocimum tenuiflorum" and
	// "Mentha tenuiflorum" do not collide on the first try
	sl, err := slug.Unique(ctx, slug.Make(g.Title+" "+title), s.Species.SlugExists)
	if err != nil {
		return nil, err
	}
	sp := &entity.PlantSpecies{Title: title, Slug: sl, GenusID: g.ID, GenusTitle: g.Title}
	if err := s.Species.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *PlantService) GetSpecies(ctx context.Context, slugStr string) (*entity.PlantSpecies, error) {
	sp, err := s.Species.GetBySlug(ctx, slugStr)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTaxonNotFound
	}
	return sp, err
}

func (s *PlantService) ListSpecies(ctx context.Context, genusSlug string, p repo.ListParams) ([]entity.PlantSpecies, int, error) {
	var genusID int64
	if genusSlug != "" {
		g, err := s.GetGenus(ctx, genusSlug)
		if err != nil {
			return nil, 0, err
		}
		genusID = g.ID
	}
	return s.Species.List(ctx, genusID, clampList(p))
}

func (s *PlantService) UpdateSpecies(ctx context.Context, slugStr, title string) (*entity.PlantSpecies, error) {
	sp, err := s.GetSpecies(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	if title != "" && title != sp.Title {
		sp.Title = title
		sp.Slug, err = slug.Unique(ctx, slug.Make(sp.GenusTitle+" "+title), s.Species.SlugExists)
		if err != nil {
			return nil, err
		}
	}
	if err := s.Species.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *PlantService) DeleteSpecies(ctx context.Context, slugStr string) error {
	sp, err := s.GetSpecies(ctx, slugStr)
	if err != nil {
		return err
	}
	return s.Species.Delete(ctx, sp.ID)
}

type PlantInput struct {
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
	FamilySlug            string
	GenusSlug             string
	SpeciesSlug           string // optional; empty for genus-level entries
}

func (s *PlantService) CreatePlant(ctx context.Context, in PlantInput) (*entity.Plant, error) {
	if !entity.ValidDuration(in.Duration) {
		return nil, ErrInvalidDuration
	}
	if !entity.ValidGrowthHabit(in.GrowthHabit) {
		return nil, ErrInvalidGrowth
	}
	f, err := s.GetFamily(ctx, in.FamilySlug)
	if err != nil {
		return nil, err
	}
	g, err := s.GetGenus(ctx, in.GenusSlug)
	if err != nil {
		return nil, err
	}
	p := &entity.Plant{
		CommonNames:           in.CommonNames,
		CommonNamesNE:         in.CommonNamesNE,
		Description:           in.Description,
		DescriptionNE:         in.DescriptionNE,
		MedicinalProperties:   in.MedicinalProperties,
		MedicinalPropertiesNE: in.MedicinalPropertiesNE,
		Duration:              in.Duration,
		GrowthHabit:           in.GrowthHabit,
		WikipediaLink:         in.WikipediaLink,
		OtherResourceLinks:    in.OtherResourceLinks,
		FamilyID:              f.ID,
		GenusID:               g.ID,
		FamilyTitle:           f.Title,
		GenusTitle:            g.Title,
	}
	if in.SpeciesSlug != "" {
		sp, err := s.GetSpecies(ctx, in.SpeciesSlug)
		if err != nil {
			return nil, err
		}
		p.SpeciesID = &sp.ID
		p.SpeciesTitle = sp.Title
	}
	if err := s.Plants.Create(ctx, p); err != nil {
		return nil, err
	}
	_ = s.indexPlant(ctx, p)
	return p, nil
}

func (s *PlantService) GetPlant(ctx context.Context, id int64) (*entity.Plant, error) {
	p, err := s.Plants.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPlantNotFound
	}
	return p, err
}

// GetPlantByScientificName resolves a classifier label like
// "Ocimum tenuiflorum" to a catalog entry, bumping its observation count.
func (s *PlantService) GetPlantByScientificName(ctx context.Context, label string) (*entity.Plant, error) {
	genus, species, _ := strings.Cut(strings.TrimSpace(label), " ")
	p, err := s.Plants.GetByScientificName(ctx, genus, species)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPlantNotFound
		}
		return nil, err
	}
	if err := s.Plants.IncrementObservations(ctx, p.ID); err != nil {
		s.Logger.WithError(err).WithField("plant_id", p.ID).Warn("observation count bump failed")
	}
	return p, nil
}

func (s *PlantService) ListPlants(ctx context.Context, f repo.PlantFilter) ([]entity.Plant, int, error) {
	f.ListParams = clampList(f.ListParams)
	return s.Plants.List(ctx, f)
}

func (s *PlantService) UpdatePlant(ctx context.Context, id int64, in PlantInput) (*entity.Plant, error) {
	p, err := s.GetPlant(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Duration != "" {
		if !entity.ValidDuration(in.Duration) {
			return nil, ErrInvalidDuration
		}
		p.Duration = in.Duration
	}
	if in.GrowthHabit != "" {
		if !entity.ValidGrowthHabit(in.GrowthHabit) {
			return nil, ErrInvalidGrowth
		}
		p.GrowthHabit = in.GrowthHabit
	}
	if in.CommonNames != nil {
		p.CommonNames = in.CommonNames
	}
	if in.CommonNamesNE != nil {
		p.CommonNamesNE = in.CommonNamesNE
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.DescriptionNE != "" {
		p.DescriptionNE = in.DescriptionNE
	}
	if in.MedicinalProperties != "" {
		p.MedicinalProperties = in.MedicinalProperties
	}
	if in.MedicinalPropertiesNE != "" {
		p.MedicinalPropertiesNE = in.MedicinalPropertiesNE
	}
	if in.WikipediaLink != "" {
		p.WikipediaLink = in.WikipediaLink
	}
	if in.OtherResourceLinks != nil {
		p.OtherResourceLinks = in.OtherResourceLinks
	}
	if err := s.Plants.Update(ctx, p); err != nil {
		return nil, err
	}
	_ = s.indexPlant(ctx, p)
	return p, nil
}

func (s *PlantService) DeletePlant(ctx context.Context, id int64) error {
	if err := s.Plants.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPlantNotFound
		}
		return err
	}
	s.deleteIndexed(ctx, id)
	return nil
}

// AddPlantImage stores the file in GCS and records the image row.
func (s *PlantService) AddPlantImage(ctx context.Context, plantID int64, part string, isDefault bool, r io.Reader, filename, contentType string) (*entity.PlantImage, error) {
	if !entity.ValidPart(part) {
		return nil, ErrInvalidPart
	}
	p, err := s.GetPlant(ctx, plantID)
	if err != nil {
		return nil, err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("plants", slug.Make(p.ScientificName()), part, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	img := &entity.PlantImage{PlantID: plantID, Part: part, URL: url, Default: isDefault}
	if err := s.Images.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *PlantService) DeletePlantImage(ctx context.Context, id int64) error {
	err := s.Images.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrPlantNotFound
	}
	return err
}

func (s *PlantService) indexPlant(ctx context.Context, p *entity.Plant) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":                   p.ID,
		"scientific_name":      p.ScientificName(),
		"common_names":         p.CommonNames,
		"common_names_ne":      p.CommonNamesNE,
		"family":               p.FamilyTitle,
		"genus":                p.GenusTitle,
		"species":              p.SpeciesTitle,
		"duration":             p.Duration,
		"growth_habit":         p.GrowthHabit,
		"medicinal_properties": p.MedicinalProperties,
		"updated_at":           p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: formatID(p.ID), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("plant_id", p.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("plant_id", p.ID).Warn("es index response error")
	}
	return nil
}

func (s *PlantService) deleteIndexed(ctx context.Context, id int64) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: formatID(id)}
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("plant_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// SearchPlants runs a multi_match over scientific and common names.
func (s *PlantService) SearchPlants(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"scientific_name^3", "common_names^2", "common_names_ne^2", "genus", "family", "medicinal_properties"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func clampList(p repo.ListParams) repo.ListParams {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
