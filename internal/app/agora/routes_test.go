package agora

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/agora/internal/models"
	articleservice "github.com/magabrotheeeer/agora/internal/services/article"
	authservice "github.com/magabrotheeeer/agora/internal/services/auth"
	newsletterservice "github.com/magabrotheeeer/agora/internal/services/newsletter"
	"github.com/magabrotheeeer/agora/internal/storage/repository"
)

// memStorage хранилище в памяти с теми же ошибками, что и repository.Storage.
type memStorage struct {
	mu          sync.Mutex
	users       []models.User
	articles    []*models.Article
	subscribers []*models.Subscriber
}

func (m *memStorage) CreateUser(_ context.Context, u models.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return 0, repository.ErrUserExists
		}
	}
	u.ID = int64(len(m.users) + 1)
	m.users = append(m.users, u)
	return u.ID, nil
}

func (m *memStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStorage) CreateArticle(_ context.Context, a models.NewArticle) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := &models.Article{
		ID: int64(len(m.articles) + 1), Title: a.Title, Excerpt: a.Excerpt, Content: a.Content,
		Category: a.Category, Access: a.Access, Author: a.Author, Date: a.Date, ChartData: a.ChartData,
	}
	m.articles = append(m.articles, created)
	return created, nil
}

func (m *memStorage) ListArticles(_ context.Context) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Article, 0, len(m.articles))
	for i := len(m.articles) - 1; i >= 0; i-- {
		out = append(out, m.articles[i])
	}
	return out, nil
}

func (m *memStorage) CountArticles(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.articles), nil
}

func (m *memStorage) CreateSubscriber(_ context.Context, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subscribers {
		if s.Email == email {
			return 0, repository.ErrSubscriberExists
		}
	}
	s := &models.Subscriber{ID: int64(len(m.subscribers) + 1), Email: email}
	m.subscribers = append(m.subscribers, s)
	return s.ID, nil
}

func (m *memStorage) ListSubscribers(_ context.Context) ([]*models.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Subscriber(nil), m.subscribers...), nil
}

func newTestRouter(t *testing.T) (http.Handler, *prometheus.Registry) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := &memStorage{}

	articles := articleservice.NewService(store, nil, 0, logger)
	_, err := articles.Seed(context.Background())
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	r := chi.NewRouter()
	RegisterRoutes(r, logger, Services{
		Auth:       authservice.NewService(store, "admin@agora.com", logger),
		Articles:   articles,
		Newsletter: newsletterservice.NewService(store, nil, logger),
	}, reg)
	return r, reg
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_Scenario(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Agora API is running"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/articles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var seeded []models.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seeded))
	require.Len(t, seeded, 2)

	rec = do(t, h, http.MethodPost, "/api/auth/signup", `{"name":"A","email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"user":{"id":1,"name":"A","email":"a@x.com","isAdmin":false}}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/auth/signup", `{"name":"B","email":"a@x.com","password":"q"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Email exists"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/auth/signup",
		`{"name":"A","email":"long@x.com","password":"`+strings.Repeat("é", 40)+`"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t,
		`{"error":"validation failed","fields":[{"field":"password","message":"password must be at most 72 bytes long"}]}`,
		rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/auth/signup",
		`{"name":"A","email":"wide@x.com","password":"`+strings.Repeat("é", 36)+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":{"id":1,"name":"A","email":"a@x.com","isAdmin":false}}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/auth/signup", `{"name":"Admin","email":"admin@agora.com","password":"admin123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isAdmin":true`)

	rec = do(t, h, http.MethodPost, "/api/articles",
		`{"title":"T","excerpt":"E","content":"C","category":"Macro","access":"free","author":"A","chartData":false}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "null", string(created.ChartData))

	rec = do(t, h, http.MethodGet, "/api/articles", "")
	var all []models.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 3)
	assert.Equal(t, "T", all[0].Title)

	rec = do(t, h, http.MethodPost, "/api/newsletter/subscribe", `{"email":"s@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Subscribed"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/newsletter/subscribe", `{"email":"s@x.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Already subscribed"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/newsletter/subscribers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"email":"s@x.com"}]`, rec.Body.String())
}

func TestRoutes_CORS(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/articles", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://example.org")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutes_UnknownPathAndMetrics(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	do(t, h, http.MethodGet, "/api/health", "")
	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `agora_http_requests_total{method="GET",route="/api/health",status="200"} 1`), body)
}

func TestRoutes_Docs(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/docs/doc.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/auth/signup"`)
}
