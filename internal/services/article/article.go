// Package article содержит бизнес-логику публикации и выдачи статей.
package article

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/agora/internal/lib/sl"
	"github.com/magabrotheeeer/agora/internal/models"
)

// CacheKeyAll ключ, под которым в кеше лежит весь список статей.
const CacheKeyAll = "articles:all"

// Repository определяет методы для работы со статьями в хранилище.
type Repository interface {
	// CreateArticle вставляет статью и возвращает её с ID.
	CreateArticle(ctx context.Context, a models.NewArticle) (*models.Article, error)
	// ListArticles возвращает все статьи, новые первыми.
	ListArticles(ctx context.Context) ([]*models.Article, error)
	// CountArticles возвращает количество статей.
	CountArticles(ctx context.Context) (int, error)
}

// Cache описывает методы для кэширования данных.
// Запись проходит только если ключ не инвалидировали с момента чтения поколения.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Generation(ctx context.Context, key string) (int64, error)
	SetIfGeneration(ctx context.Context, key string, gen int64, value any, expiration time.Duration) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

// Service реализует публикацию и выдачу статей с необязательным кешем.
type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
	now   func() time.Time
}

// NewService создает новый экземпляр Service. cache может быть nil.
func NewService(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}
}

// List возвращает все статьи, новые первыми. Сначала смотрит в кеш.
func (s *Service) List(ctx context.Context) ([]*models.Article, error) {
	const op = "services.article.List"

	var (
		gen       int64
		cacheable bool
	)
	if s.cache != nil {
		var cached []*models.Article
		found, err := s.cache.Get(ctx, CacheKeyAll, &cached)
		if err != nil {
			s.log.Warn("failed to read articles from cache", sl.Err(err))
		} else if found {
			return cached, nil
		}

		// Поколение читается до запроса к базе: если Create успеет между ними,
		// устаревший список в кеш не попадёт.
		gen, err = s.cache.Generation(ctx, CacheKeyAll)
		if err != nil {
			s.log.Warn("failed to read articles cache generation", sl.Err(err))
		} else {
			cacheable = true
		}
	}

	articles, err := s.repo.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cacheable {
		stored, err := s.cache.SetIfGeneration(ctx, CacheKeyAll, gen, articles, s.ttl)
		if err != nil {
			s.log.Warn("failed to cache articles", sl.Err(err))
		} else if !stored {
			s.log.Debug("articles changed while listing, cache left empty")
		}
	}
	return articles, nil
}

// Create публикует статью. Дата публикации всегда текущая дата сервера,
// а пустой график сохраняется как отсутствующий.
func (s *Service) Create(ctx context.Context, in models.NewArticle) (*models.Article, error) {
	const op = "services.article.Create"

	chart, err := NormalizeChart(in.ChartData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	in.ChartData = chart
	in.Date = s.now().Format(models.DateLayout)

	created, err := s.repo.CreateArticle(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("article published", slog.Int64("id", created.ID), slog.String("category", created.Category))

	s.invalidate(ctx)
	return created, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, CacheKeyAll); err != nil {
		s.log.Warn("failed to invalidate articles cache", sl.Err(err))
	}
}

// NormalizeChart компактно сериализует график. JSON null и «пустые» значения
// (false, 0, "", [], {}) считаются отсутствием графика и дают nil.
func NormalizeChart(raw json.RawMessage) (json.RawMessage, error) {
	const op = "services.article.NormalizeChart"
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if isEmptyJSON(v) {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

func isEmptyJSON(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}
