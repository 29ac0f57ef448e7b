package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
)

var ErrClassifierUnavailable = errors.New("classifier is unavailable")

// Prediction is one candidate label from the classifier.
type Prediction struct {
	ScientificName string  `json:"scientific_name"`
	Probability    float64 `json:"probability"`
}

// PredictResult carries the classifier output plus the catalog entry for
// the top label, when one exists.
type PredictResult struct {
	Predictions []Prediction  `json:"predictions"`
	Plant       *entity.Plant `json:"plant,omitempty"`
}

// PlantResolver looks catalog entries up by classifier label.
type PlantResolver interface {
	GetPlantByScientificName(ctx context.Context, label string) (*entity.Plant, error)
}

// PredictService forwards leaf images to the external model server and
// enriches the answer with catalog data. The backend holds no model; it is
// a thin proxy.
type PredictService struct {
	URL     string
	Client  *http.Client
	Catalog PlantResolver
	Logger  *logrus.Logger
}

func NewPredictService(url string, timeout time.Duration, catalog PlantResolver, logger *logrus.Logger) *PredictService {
	return &PredictService{
		URL:     url,
		Client:  &http.Client{Timeout: timeout},
		Catalog: catalog,
		Logger:  logger,
	}
}

// Predict streams the image to the model server as multipart/form-data.
func (s *PredictService) Predict(ctx context.Context, image io.Reader, filename string) (*PredictResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("image", filename)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, image); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.Client.Do(req)
	if err != nil {
		s.Logger.WithError(err).Warn("classifier request failed")
		return nil, ErrClassifierUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.Logger.WithField("status", resp.StatusCode).WithField("body", string(body)).Warn("classifier returned error")
		return nil, fmt.Errorf("%w: status %d", ErrClassifierUnavailable, resp.StatusCode)
	}

	var preds []Prediction
	if err := json.NewDecoder(resp.Body).Decode(&preds); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}

	out := &PredictResult{Predictions: preds}
	if len(preds) > 0 {
		plant, err := s.Catalog.GetPlantByScientificName(ctx, preds[0].ScientificName)
		if err == nil {
			out.Plant = plant
		} else if !errors.Is(err, ErrPlantNotFound) {
			s.Logger.WithError(err).Warn("catalog lookup after prediction failed")
		}
	}
	return out, nil
}
