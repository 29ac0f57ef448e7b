package application

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
)

type fakeResolver struct {
	plants map[string]*entity.Plant
}

func (f *fakeResolver) GetPlantByScientificName(_ context.Context, label string) (*entity.Plant, error) {
	if p, ok := f.plants[label]; ok {
		return p, nil
	}
	return nil, ErrPlantNotFound
}

func TestPredictProxiesImageAndResolvesPlant(t *testing.T) {
	var gotFilename string
	var gotBytes []byte

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotBytes, _ = io.ReadAll(file)
		_ = json.NewEncoder(w).Encode([]Prediction{
			{ScientificName: "Ocimum tenuiflorum", Probability: 0.93},
			{ScientificName: "Mentha spicata", Probability: 0.04},
		})
	}))
	defer upstream.Close()

	resolver := &fakeResolver{plants: map[string]*entity.Plant{
		"Ocimum tenuiflorum": {ID: 7, GenusTitle: "Ocimum", SpeciesTitle: "tenuiflorum"},
	}}
	svc := NewPredictService(upstream.URL, 5*time.Second, resolver, logrus.New())

	res, err := svc.Predict(context.Background(), strings.NewReader("leafy-bytes"), "leaf.jpg")
	require.NoError(t, err)
	assert.Equal(t, "leaf.jpg", gotFilename)
	assert.Equal(t, "leafy-bytes", string(gotBytes))
	require.Len(t, res.Predictions, 2)
	assert.InDelta(t, 0.93, res.Predictions[0].Probability, 1e-9)
	require.NotNil(t, res.Plant)
	assert.Equal(t, int64(7), res.Plant.ID)
}

func TestPredictTopLabelMissingFromCatalog(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]Prediction{{ScientificName: "Unknownia plantus", Probability: 0.5}})
	}))
	defer upstream.Close()

	svc := NewPredictService(upstream.URL, 5*time.Second, &fakeResolver{plants: map[string]*entity.Plant{}}, logrus.New())

	res, err := svc.Predict(context.Background(), strings.NewReader("x"), "leaf.png")
	require.NoError(t, err)
	assert.Nil(t, res.Plant)
	assert.Len(t, res.Predictions, 1)
}

func TestPredictUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc := NewPredictService(upstream.URL, 5*time.Second, &fakeResolver{plants: map[string]*entity.Plant{}}, logrus.New())

	_, err := svc.Predict(context.Background(), strings.NewReader("x"), "leaf.png")
	assert.ErrorIs(t, err, ErrClassifierUnavailable)
}

func TestPredictUnreachableUpstream(t *testing.T) {
	svc := NewPredictService("http://127.0.0.1:1", time.Second, &fakeResolver{plants: map[string]*entity.Plant{}}, logrus.New())

	_, err := svc.Predict(context.Background(), strings.NewReader("x"), "leaf.png")
	assert.ErrorIs(t, err, ErrClassifierUnavailable)
}
