package create

import (
	"context"

	"github.com/magabrotheeeer/agora/internal/models"
)

// Service описывает публикацию статьи.
type Service interface {
	Create(ctx context.Context, in models.NewArticle) (*models.Article, error)
}
