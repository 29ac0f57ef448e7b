package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/surajkarki66/MediLeaf-backend/internal/application"
	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
	repo "github.com/surajkarki66/MediLeaf-backend/internal/domain/repository"
	"github.com/surajkarki66/MediLeaf-backend/pkg/response"
	"github.com/surajkarki66/MediLeaf-backend/pkg/validation"
)

type PlantHandler struct {
	Svc    *app.PlantService
	Logger *logrus.Logger
}

func NewPlantHandler(svc *app.PlantService, logger *logrus.Logger) *PlantHandler {
	return &PlantHandler{Svc: svc, Logger: logger}
}

type taxonRequest struct {
	Title string `json:"title" binding:"required,max=150"`
}

type genusRequest struct {
	Title      string `json:"title" binding:"required,max=150"`
	FamilySlug string `json:"family_slug" binding:"required"`
}

type speciesRequest struct {
	Title     string `json:"title" binding:"required,max=150"`
	GenusSlug string `json:"genus_slug" binding:"required"`
}

type plantRequest struct {
	CommonNames           []string `json:"common_names"`
	CommonNamesNE         []string `json:"common_names_ne"`
	Description           string   `json:"description"`
	DescriptionNE         string   `json:"description_ne"`
	MedicinalProperties   string   `json:"medicinal_properties"`
	MedicinalPropertiesNE string   `json:"medicinal_properties_ne"`
	Duration              string   `json:"duration" binding:"required"`
	GrowthHabit           string   `json:"growth_habit" binding:"required"`
	WikipediaLink         string   `json:"wikipedia_link" binding:"omitempty,url"`
	OtherResourceLinks    []string `json:"other_resource_links"`
	FamilySlug            string   `json:"family_slug" binding:"required"`
	GenusSlug             string   `json:"genus_slug" binding:"required"`
	SpeciesSlug           string   `json:"species_slug"`
}

type plantUpdateRequest struct {
	CommonNames           []string `json:"common_names"`
	CommonNamesNE         []string `json:"common_names_ne"`
	Description           string   `json:"description"`
	DescriptionNE         string   `json:"description_ne"`
	MedicinalProperties   string   `json:"medicinal_properties"`
	MedicinalPropertiesNE string   `json:"medicinal_properties_ne"`
	Duration              string   `json:"duration"`
	GrowthHabit           string   `json:"growth_habit"`
	WikipediaLink         string   `json:"wikipedia_link" binding:"omitempty,url"`
	OtherResourceLinks    []string `json:"other_resource_links"`
}

func listParams(c *gin.Context) repo.ListParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return repo.ListParams{Limit: limit, Offset: offset, Search: c.Query("search")}
}

func listMeta(total, limit, offset int) gin.H {
	return gin.H{"total": total, "limit": limit, "offset": offset}
}

func plantPayload(p *entity.Plant) gin.H {
	images := make([]gin.H, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, gin.H{
			"id":      img.ID,
			"part":    img.Part,
			"url":     img.URL,
			"default": img.Default,
		})
	}
	return gin.H{
		"id":                      p.ID,
		"scientific_name":         p.ScientificName(),
		"common_names":            p.CommonNames,
		"common_names_ne":         p.CommonNamesNE,
		"description":             p.Description,
		"description_ne":          p.DescriptionNE,
		"medicinal_properties":    p.MedicinalProperties,
		"medicinal_properties_ne": p.MedicinalPropertiesNE,
		"duration":                p.Duration,
		"growth_habit":            p.GrowthHabit,
		"wikipedia_link":          p.WikipediaLink,
		"other_resource_links":    p.OtherResourceLinks,
		"observation_count":       p.ObservationCount,
		"family":                  p.FamilyTitle,
		"genus":                   p.GenusTitle,
		"species":                 p.SpeciesTitle,
		"images":                  images,
		"created_at":              p.CreatedAt,
		"updated_at":              p.UpdatedAt,
	}
}

func (h *PlantHandler) catalogError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, app.ErrTaxonNotFound), errors.Is(err, app.ErrPlantNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, app.ErrInvalidDuration), errors.Is(err, app.ErrInvalidGrowth), errors.Is(err, app.ErrInvalidPart):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, repo.ErrDuplicate):
		response.Error(c, http.StatusConflict, "entry already exists", nil)
	default:
		h.Logger.WithError(err).Error(action + " failed")
		response.Error(c, http.StatusInternalServerError, "could not "+action, nil)
	}
}

func (h *PlantHandler) CreateFamily(c *gin.Context) {
	var req taxonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	f, err := h.Svc.CreateFamily(c.Request.Context(), req.Title)
	if err != nil {
		h.catalogError(c, err, "create family")
		return
	}
	response.Success(c, http.StatusCreated, f, "family created", nil)
}

func (h *PlantHandler) GetFamily(c *gin.Context) {
	f, err := h.Svc.GetFamily(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.catalogError(c, err, "get family")
		return
	}
	response.Success(c, http.StatusOK, f, "family", nil)
}

func (h *PlantHandler) ListFamilies(c *gin.Context) {
	p := listParams(c)
	items, total, err := h.Svc.ListFamilies(c.Request.Context(), p)
	if err != nil {
		h.catalogError(c, err, "list families")
		return
	}
	response.Success(c, http.StatusOK, items, "families", listMeta(total, p.Limit, p.Offset))
}

func (h *PlantHandler) UpdateFamily(c *gin.Context) {
	var req taxonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	f, err := h.Svc.UpdateFamily(c.Request.Context(), c.Param("slug"), req.Title)
	if err != nil {
		h.catalogError(c, err, "update family")
		return
	}
	response.Success(c, http.StatusOK, f, "family updated", nil)
}

func (h *PlantHandler) DeleteFamily(c *gin.Context) {
	if err := h.Svc.DeleteFamily(c.Request.Context(), c.Param("slug")); err != nil {
		h.catalogError(c, err, "delete family")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "family deleted", nil)
}

func (h *PlantHandler) CreateGenus(c *gin.Context) {
	var req genusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	g, err := h.Svc.CreateGenus(c.Request.Context(), req.Title, req.FamilySlug)
	if err != nil {
		h.catalogError(c, err, "create genus")
		return
	}
	response.Success(c, http.StatusCreated, g, "genus created", nil)
}

func (h *PlantHandler) GetGenus(c *gin.Context) {
	g, err := h.Svc.GetGenus(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.catalogError(c, err, "get genus")
		return
	}
	response.Success(c, http.StatusOK, g, "genus", nil)
}

func (h *PlantHandler) ListGenuses(c *gin.Context) {
	p := listParams(c)
	items, total, err := h.Svc.ListGenuses(c.Request.Context(), c.Query("family"), p)
	if err != nil {
		h.catalogError(c, err, "list genuses")
		return
	}
	response.Success(c, http.StatusOK, items, "genuses", listMeta(total, p.Limit, p.Offset))
}

func (h *PlantHandler) UpdateGenus(c *gin.Context) {
	var req taxonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	g, err := h.Svc.UpdateGenus(c.Request.Context(), c.Param("slug"), req.Title)
	if err != nil {
		h.catalogError(c, err, "update genus")
		return
	}
	response.Success(c, http.StatusOK, g, "genus updated", nil)
}

func (h *PlantHandler) DeleteGenus(c *gin.Context) {
	if err := h.Svc.DeleteGenus(c.Request.Context(), c.Param("slug")); err != nil {
		h.catalogError(c, err, "delete genus")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "genus deleted", nil)
}

func (h *PlantHandler) CreateSpecies(c *gin.Context) {
	var req speciesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sp, err := h.Svc.CreateSpecies(c.Request.Context(), req.Title, req.GenusSlug)
	if err != nil {
		h.catalogError(c, err, "create species")
		return
	}
	response.Success(c, http.StatusCreated, sp, "species created", nil)
}

func (h *PlantHandler) GetSpecies(c *gin.Context) {
	sp, err := h.Svc.GetSpecies(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.catalogError(c, err, "get species")
		return
	}
	response.Success(c, http.StatusOK, sp, "species", nil)
}

func (h *PlantHandler) ListSpecies(c *gin.Context) {
	p := listParams(c)
	items, total, err := h.Svc.ListSpecies(c.Request.Context(), c.Query("genus"), p)
	if err != nil {
		h.catalogError(c, err, "list species")
		return
	}
	response.Success(c, http.StatusOK, items, "species", listMeta(total, p.Limit, p.Offset))
}

func (h *PlantHandler) UpdateSpecies(c *gin.Context) {
	var req taxonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sp, err := h.Svc.UpdateSpecies(c.Request.Context(), c.Param("slug"), req.Title)
	if err != nil {
		h.catalogError(c, err, "update species")
		return
	}
	response.Success(c, http.StatusOK, sp, "species updated", nil)
}

func (h *PlantHandler) DeleteSpecies(c *gin.Context) {
	if err := h.Svc.DeleteSpecies(c.Request.Context(), c.Param("slug")); err != nil {
		h.catalogError(c, err, "delete species")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "species deleted", nil)
}

func (h *PlantHandler) CreatePlant(c *gin.Context) {
	var req plantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.CreatePlant(c.Request.Context(), app.PlantInput{
		CommonNames:           req.CommonNames,
		CommonNamesNE:         req.CommonNamesNE,
		Description:           req.Description,
		DescriptionNE:         req.DescriptionNE,
		MedicinalProperties:   req.MedicinalProperties,
		MedicinalPropertiesNE: req.MedicinalPropertiesNE,
		Duration:              req.Duration,
		GrowthHabit:           req.GrowthHabit,
		WikipediaLink:         req.WikipediaLink,
		OtherResourceLinks:    req.OtherResourceLinks,
		FamilySlug:            req.FamilySlug,
		GenusSlug:             req.GenusSlug,
		SpeciesSlug:           req.SpeciesSlug,
	})
	if err != nil {
		h.catalogError(c, err, "create plant")
		return
	}
	response.Success(c, http.StatusCreated, plantPayload(p), "plant created", nil)
}

func (h *PlantHandler) GetPlant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid plant id", nil)
		return
	}
	p, err := h.Svc.GetPlant(c.Request.Context(), id)
	if err != nil {
		h.catalogError(c, err, "get plant")
		return
	}
	response.Success(c, http.StatusOK, plantPayload(p), "plant", nil)
}

func (h *PlantHandler) ListPlants(c *gin.Context) {
	p := listParams(c)
	filter := repo.PlantFilter{
		ListParams:  p,
		FamilySlug:  c.Query("family"),
		GenusSlug:   c.Query("genus"),
		Duration:    c.Query("duration"),
		GrowthHabit: c.Query("growth_habit"),
	}
	items, total, err := h.Svc.ListPlants(c.Request.Context(), filter)
	if err != nil {
		h.catalogError(c, err, "list plants")
		return
	}
	payload := make([]gin.H, 0, len(items))
	for i := range items {
		payload = append(payload, plantPayload(&items[i]))
	}
	response.Success(c, http.StatusOK, payload, "plants", listMeta(total, p.Limit, p.Offset))
}

func (h *PlantHandler) UpdatePlant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid plant id", nil)
		return
	}
	var req plantUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdatePlant(c.Request.Context(), id, app.PlantInput{
		CommonNames:           req.CommonNames,
		CommonNamesNE:         req.CommonNamesNE,
		Description:           req.Description,
		DescriptionNE:         req.DescriptionNE,
		MedicinalProperties:   req.MedicinalProperties,
		MedicinalPropertiesNE: req.MedicinalPropertiesNE,
		Duration:              req.Duration,
		GrowthHabit:           req.GrowthHabit,
		WikipediaLink:         req.WikipediaLink,
		OtherResourceLinks:    req.OtherResourceLinks,
	})
	if err != nil {
		h.catalogError(c, err, "update plant")
		return
	}
	response.Success(c, http.StatusOK, plantPayload(p), "plant updated", nil)
}

func (h *PlantHandler) DeletePlant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid plant id", nil)
		return
	}
	if err := h.Svc.DeletePlant(c.Request.Context(), id); err != nil {
		h.catalogError(c, err, "delete plant")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "plant deleted", nil)
}

func (h *PlantHandler) UploadPlantImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid plant id", nil)
		return
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	part := c.DefaultPostForm("part", entity.PartOther)
	isDefault := c.PostForm("default") == "true"

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read image", nil)
		return
	}
	defer f.Close()

	img, err := h.Svc.AddPlantImage(c.Request.Context(), id, part, isDefault, f, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.catalogError(c, err, "upload plant image")
		return
	}
	response.Success(c, http.StatusCreated, img, "image uploaded", nil)
}

func (h *PlantHandler) DeletePlantImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("imageID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid image id", nil)
		return
	}
	if err := h.Svc.DeletePlantImage(c.Request.Context(), id); err != nil {
		h.catalogError(c, err, "delete plant image")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "image deleted", nil)
}

func (h *PlantHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchPlants(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("plant search failed")
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
