package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terraguide_api/config"
	"terraguide_api/models"
	"terraguide_api/services"
)

// memoryStore 内存版聚合存储，实现services.Store
type memoryStore struct {
	record         *models.SurveyRecord
	interactionErr error
	cached         []models.CachedRecommendation
}

func (m *memoryStore) GetSurveyRecord(guideID string) (*models.SurveyRecord, error) {
	if m.record == nil {
		return nil, sql.ErrNoRows
	}
	return m.record, nil
}

func (m *memoryStore) ReplaceRecommendations(userID string, items []models.RecommendationItem, modelVersion string) error {
	m.cached = m.cached[:0]
	for _, item := range items {
		m.cached = append(m.cached, models.CachedRecommendation{
			UserID:       userID,
			CourseID:     item.CourseID,
			Score:        item.Score,
			ModelVersion: modelVersion,
			CreatedAt:    time.Now(),
		})
	}
	return nil
}

func (m *memoryStore) GetCachedRecommendations(userID string) ([]models.CachedRecommendation, error) {
	return m.cached, nil
}

func (m *memoryStore) PurgeExpiredRecommendations(ttl time.Duration) (int64, error) {
	return 0, nil
}

func (m *memoryStore) InsertInteraction(id string, interaction *models.UserInteraction) error {
	return m.interactionErr
}

func (m *memoryStore) Ping() error {
	return nil
}

func (m *memoryStore) ProbeSurveyData() (int, error) {
	return 1, nil
}

// stubClassifier 固定结果的推理服务
type stubClassifier struct {
	result *models.ClassifierResult
	err    error
}

func (s *stubClassifier) Classify(ctx context.Context, image []byte) (*models.ClassifierResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubClassifier) Healthcheck(ctx context.Context) error {
	return s.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Recommender.DefaultCount = 5
	cfg.Recommender.ModelVersion = "database_v1.0"
	cfg.Classifier.Threshold = 0.4
	cfg.Classifier.MaxUploadBytes = 1 << 20
	return cfg
}

func newTestRouter(store *memoryStore, classifier services.Classifier) *chi.Mux {
	r := chi.NewRouter()
	RegisterRoutes(r, testConfig(), store, classifier)
	return r
}

func decodeEnvelope(t *testing.T, body []byte) (int, json.RawMessage) {
	t.Helper()
	var envelope struct {
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Code, envelope.Data
}

func TestRecommendationsEndpointFallback(t *testing.T) {
	router := newTestRouter(&memoryStore{}, &stubClassifier{})

	body := `{"user_id":"user-1","user_name":"Alice","user_email":"alice@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	code, data := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, models.CodeSuccess, code)

	var items []models.RecommendationItem
	require.NoError(t, json.Unmarshal(data, &items))
	// 没有问卷数据时返回完整的热门课程兜底列表
	require.Len(t, items, 5)
	assert.Equal(t, "Master Park Guide Certification Program", items[0].CourseID)
}

func TestRecommendationsEndpointZeroCount(t *testing.T) {
	store := &memoryStore{}
	router := newTestRouter(store, &stubClassifier{})

	body := `{"user_id":"user-1","user_name":"Alice","num_recommendations":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	code, data := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, models.CodeSuccess, code)

	var items []models.RecommendationItem
	require.NoError(t, json.Unmarshal(data, &items))
	assert.Empty(t, items)
	assert.Empty(t, store.cached, "N=0时不应该写缓存")
}

func TestRecommendationsEndpointMissingUserName(t *testing.T) {
	router := newTestRouter(&memoryStore{}, &stubClassifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(`{"user_id":"user-1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	code, _ := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, models.CodeMissingParams, code)
}

func TestProfileEndpointNotFound(t *testing.T) {
	router := newTestRouter(&memoryStore{}, &stubClassifier{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/user-1/profile?user_name=Alice", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	code, _ := decodeEnvelope(t, rec.Body.Bytes())
	// 未找到是明确的错误码，不是静默兜底
	assert.Equal(t, models.CodeNoSurveyData, code)
}

func TestInteractionsEndpointPartialSuccess(t *testing.T) {
	store := &memoryStore{interactionErr: errors.New("table missing")}
	router := newTestRouter(store, &stubClassifier{})

	body := `{"user_id":"user-1","user_name":"Alice","course_id":"Introduction to Park Guiding","interaction_type":"viewed"}`
	req := httptest.NewRequest(http.MethodPost, "/api/interactions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	code, data := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, models.CodeSuccess, code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "partial_success", result["status"])
}

func TestFloraIdentifyEndpointRejectsNonImage(t *testing.T) {
	classifier := &stubClassifier{
		result: &models.ClassifierResult{Label: "Vanda coerulea", Confidence: 0.9},
	}
	router := newTestRouter(&memoryStore{}, classifier)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("definitely not an image"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/flora/identify", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	code, _ := decodeEnvelope(t, rec.Body.Bytes())
	assert.Equal(t, models.CodeInvalidImage, code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&memoryStore{}, &stubClassifier{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "connected", health["database_status"])
}
