package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fraud-scoring-service/internal/adapters/secondary/artifact"
	"fraud-scoring-service/internal/adapters/secondary/filesystem"
	"fraud-scoring-service/internal/core/domain"
	"fraud-scoring-service/internal/core/ports/output"
	"fraud-scoring-service/internal/core/services"
	"fraud-scoring-service/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testModelPath = "model.json"

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

type routerOpts struct {
	stub *testutil.StubArtifact
	repo ports.PredictionRepository
	db   Pinger
}

// setupRouter builds the full handler. A nil stub leaves the model unloaded.
func setupRouter(t *testing.T, opts routerOpts) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	source := new(testutil.MockArtifactSource)
	decoder := new(testutil.MockArtifactDecoder)
	loader := services.NewArtifactLoader(source, decoder)
	if opts.stub != nil {
		source.On("Exists", mock.Anything, testModelPath).Return(true, nil)
		source.On("Read", mock.Anything, testModelPath).Return([]byte("{}"), nil)
		decoder.On("Decode", []byte("{}")).Return(opts.stub, nil)
		_, err := loader.Load(context.Background(), testModelPath)
		require.NoError(t, err)
	}

	return newRouter(loader, opts.repo, opts.db)
}

func newRouter(loader *services.ArtifactLoader, repo ports.PredictionRepository, db Pinger) *gin.Engine {
	h := New(
		loader,
		services.NewPredictionService(loader, repo, "1.0.0"),
		services.NewCalculatorService(),
		services.NewMessageService(),
		services.NewItemService(),
		services.NewSimplePredictionService("1.0.0"),
		db,
	)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("request_id", "test-request")
		c.Next()
	})
	h.RegisterRoutes(r)
	return r
}

func transactionBody(amount float64) map[string]interface{} {
	body := map[string]interface{}{"Time": 0.0, "Amount": amount}
	for _, name := range domain.FeatureNames[1:11] {
		body[name] = 0.0
	}
	return body
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestPredictFraud(t *testing.T) {
	r := setupRouter(t, routerOpts{stub: testutil.NewStubArtifact(1, 0.1, 0.9)})

	w := doJSON(r, "POST", "/predict", transactionBody(0))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, float64(1), resp["prediction"])
	assert.Equal(t, "FRAUDULENT", resp["prediction_label"])
	assert.Equal(t, 0.9, resp["fraud_probability"])
	assert.Equal(t, "HIGH", resp["risk_level"])
	assert.Equal(t, "1.0.0", resp["model_version"])
	assert.Equal(t, "test-request", resp["request_id"])
}

func TestPredictFraud_RecordsPrediction(t *testing.T) {
	repo := new(testutil.MockPredictionRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(rec *domain.PredictionRecord) bool {
		return rec.RequestID == "test-request" && rec.Features[11] == 250
	})).Return(nil)
	r := setupRouter(t, routerOpts{stub: testutil.NewStubArtifact(0, 0.6, 0.4), repo: repo})

	w := doJSON(r, "POST", "/predict", transactionBody(250))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MEDIUM", decode(t, w)["risk_level"])
	repo.AssertExpectations(t)
}

func TestPredictFraud_MissingField(t *testing.T) {
	r := setupRouter(t, routerOpts{stub: testutil.NewStubArtifact(1, 0.1, 0.9)})

	body := transactionBody(10)
	delete(body, "V7")
	w := doJSON(r, "POST", "/predict", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictFraud_NegativeAmount(t *testing.T) {
	r := setupRouter(t, routerOpts{stub: testutil.NewStubArtifact(1, 0.1, 0.9)})

	w := doJSON(r, "POST", "/predict", transactionBody(-5))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictFraud_ModelNotLoaded(t *testing.T) {
	r := setupRouter(t, routerOpts{})

	w := doJSON(r, "POST", "/predict", transactionBody(10))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, decode(t, w)["error"], domain.ErrArtifactNotLoaded.Error())
}

func TestPredictFraud_InferenceFailure(t *testing.T) {
	stub := &testutil.StubArtifact{Class: 1, Probabilities: []float64{0.1, 0.9}, EstimateErr: errors.New("kaboom")}
	r := setupRouter(t, routerOpts{stub: stub})

	w := doJSON(r, "POST", "/predict", transactionBody(10))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode(t, w)["error"])
}

func TestPredictFraud_RealArtifact(t *testing.T) {
	gin.SetMode(gin.TestMode)
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
kind: decision_tree
n_features: 12
trees:
  - nodes:
      - {feature: 11, threshold: 1000, left: 1, right: 2}
      - {left: -1, right: -1, value: [95, 5]}
      - {left: -1, right: -1, value: [1, 3]}
`), 0o600))

	loader := services.NewArtifactLoader(filesystem.NewSource(), artifact.Decoder)
	_, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	r := newRouter(loader, nil, nil)

	w := doJSON(r, "POST", "/predict", transactionBody(20))
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "LEGITIMATE", resp["prediction_label"])
	assert.InDelta(t, 0.05, resp["fraud_probability"], 1e-9)
	assert.Equal(t, "LOW", resp["risk_level"])

	w = doJSON(r, "POST", "/predict", transactionBody(5000))
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode(t, w)
	assert.Equal(t, "FRAUDULENT", resp["prediction_label"])
	assert.InDelta(t, 0.75, resp["fraud_probability"], 1e-9)
	assert.Equal(t, "HIGH", resp["risk_level"])

	w = doJSON(r, "GET", "/model/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decode(t, w)
	assert.Equal(t, true, info["loaded"])
	assert.Equal(t, "decision_tree", info["artifact_kind"])
	assert.Equal(t, path, info["path"])
}

func TestModelInfo_NotLoaded(t *testing.T) {
	r := setupRouter(t, routerOpts{})

	w := doJSON(r, "GET", "/model/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, false, resp["loaded"])
	assert.NotContains(t, resp, "artifact_kind")
	assert.NotContains(t, resp, "path")
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name string
		opts routerOpts
		code int
	}{
		{"model not loaded", routerOpts{}, http.StatusServiceUnavailable},
		{"loaded without db", routerOpts{stub: testutil.NewStubArtifact(0, 1, 0)}, http.StatusOK},
		{"loaded with db", routerOpts{stub: testutil.NewStubArtifact(0, 1, 0), db: fakePinger{}}, http.StatusOK},
		{"db down", routerOpts{stub: testutil.NewStubArtifact(0, 1, 0), db: fakePinger{err: errors.New("refused")}}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, tt.opts)
			w := doJSON(r, "GET", "/healthz", nil)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestListPredictions(t *testing.T) {
	repo := new(testutil.MockPredictionRepo)
	records := []*domain.PredictionRecord{{
		ID: uuid.New(), CreatedAt: time.Now(), RequestID: "r1",
		Features:       domain.FeatureVector{11: 99},
		PredictedClass: 1, FraudProbability: 0.8,
		RiskLevel: domain.RiskLevelHigh, Label: domain.LabelFraudulent,
	}}
	repo.On("List", mock.Anything, ports.PredictionListFilter{RiskLevel: "HIGH", Limit: 5}).Return(records, 1, nil)
	r := setupRouter(t, routerOpts{stub: testutil.NewStubArtifact(0, 1, 0), repo: repo})

	w := doJSON(r, "GET", "/predictions?risk_level=HIGH&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, float64(1), resp["total"])
	items := resp["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "HIGH", item["risk_level"])
	assert.Equal(t, float64(99), item["features"].(map[string]interface{})["Amount"])
}

func TestListPredictions_ReportsAppliedPaging(t *testing.T) {
	repo := new(testutil.MockPredictionRepo)
	two := []*domain.PredictionRecord{{ID: uuid.New()}, {ID: uuid.New()}}
	repo.On("List", mock.Anything, ports.PredictionListFilter{Limit: 100}).Return(two, 2, nil)
	repo.On("List", mock.Anything, ports.PredictionListFilter{Limit: 20, Offset: 10}).Return([]*domain.PredictionRecord{}, 10, nil)
	r := setupRouter(t, routerOpts{stub: testutil.NewStubArtifact(0, 1, 0), repo: repo})

	tests := []struct {
		name       string
		query      string
		pageSize   float64
		nextOffset float64
	}{
		{"limit above cap", "?limit=500&offset=-4", 100, 2},
		{"unparsable limit", "?limit=abc&offset=10", 20, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, "GET", "/predictions"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)
			resp := decode(t, w)
			assert.Equal(t, tt.pageSize, resp["page_size"])
			assert.Equal(t, tt.nextOffset, resp["next_offset"])
		})
	}
}

func TestListPredictions_InvalidFilter(t *testing.T) {
	r := setupRouter(t, routerOpts{stub: testutil.NewStubArtifact(0, 1, 0), repo: new(testutil.MockPredictionRepo)})

	w := doJSON(r, "GET", "/predictions?risk_level=EXTREME", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictions_StoreDisabled(t *testing.T) {
	r := setupRouter(t, routerOpts{stub: testutil.NewStubArtifact(0, 1, 0)})

	w := doJSON(r, "GET", "/predictions", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = doJSON(r, "GET", "/predictions/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetPrediction(t *testing.T) {
	repo := new(testutil.MockPredictionRepo)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.PredictionRecord{ID: id, CreatedAt: time.Now()}, nil)
	repo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil, domain.ErrPredictionNotFound)
	r := setupRouter(t, routerOpts{stub: testutil.NewStubArtifact(0, 1, 0), repo: repo})

	w := doJSON(r, "GET", "/predictions/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), decode(t, w)["id"])

	w = doJSON(r, "GET", "/predictions/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, "GET", "/predictions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
