package article

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/agora/internal/models"
)

// SampleArticles статьи, которыми заполняется пустая база.
func SampleArticles() []models.NewArticle {
	return []models.NewArticle{
		{
			Title:    "Understanding Global Trade Wars",
			Excerpt:  "How trade policies shape markets",
			Content:  "Trade wars have become increasingly common...",
			Category: "markets",
			Access:   "free",
			Author:   "agora Team",
			Date:     "2026-02-05",
		},
		{
			Title:    "The Rise of Populism",
			Excerpt:  "Analyzing populist movements",
			Content:  "Populist movements have reshaped politics...",
			Category: "politics",
			Access:   "members",
			Author:   "agora Team",
			Date:     "2026-02-03",
		},
	}
}

// Seed вставляет SampleArticles, только если статей нет совсем.
// Проверяется пустота таблицы, а не наличие конкретных образцов.
// После вставки кеш списка сбрасывается, в нём мог остаться пустой список.
func (s *Service) Seed(ctx context.Context) (bool, error) {
	const op = "services.article.Seed"

	count, err := s.repo.CountArticles(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if count > 0 {
		s.log.Debug("articles already present, seeding skipped", slog.Int("count", count))
		return false, nil
	}

	for _, a := range SampleArticles() {
		if _, err := s.repo.CreateArticle(ctx, a); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}
	s.invalidate(ctx)
	s.log.Info("database seeded with sample articles")
	return true, nil
}
