package list

import (
	"context"

	"github.com/magabrotheeeer/agora/internal/models"
)

// Service описывает получение списка статей.
type Service interface {
	List(ctx context.Context) ([]*models.Article, error)
}
