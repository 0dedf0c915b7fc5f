package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/agora/internal/models"
)

// CreateArticle вставляет статью и возвращает её с присвоенным ID.
// Пустой ChartData сохраняется как NULL.
func (s *Storage) CreateArticle(ctx context.Context, a models.NewArticle) (*models.Article, error) {
	const op = "storage.CreateArticle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var chart sql.NullString
	if len(a.ChartData) > 0 {
		chart = sql.NullString{String: string(a.ChartData), Valid: true}
	}

	var id int64
	query := `INSERT INTO articles (title, excerpt, content, category, access, author, date, chart_data)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		a.Title, a.Excerpt, a.Content, a.Category, a.Access, a.Author, a.Date, chart).Scan(&id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Article{
		ID:        id,
		Title:     a.Title,
		Excerpt:   a.Excerpt,
		Content:   a.Content,
		Category:  a.Category,
		Access:    a.Access,
		Author:    a.Author,
		Date:      a.Date,
		ChartData: a.ChartData,
	}, nil
}

// ListArticles возвращает все статьи, новые первыми (по убыванию ID).
func (s *Storage) ListArticles(ctx context.Context) ([]*models.Article, error) {
	const op = "storage.ListArticles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, excerpt, content, category, access, author, date, chart_data
			  FROM articles
			  ORDER BY id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		a := &models.Article{}
		var chart sql.NullString
		if err := rows.Scan(&a.ID, &a.Title, &a.Excerpt, &a.Content,
			&a.Category, &a.Access, &a.Author, &a.Date, &chart); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if chart.Valid && chart.String != "" {
			a.ChartData = json.RawMessage(chart.String)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return articles, nil
}

// CountArticles возвращает количество статей.
func (s *Storage) CountArticles(ctx context.Context) (int, error) {
	const op = "storage.CountArticles"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
