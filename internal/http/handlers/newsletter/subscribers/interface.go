package subscribers

import (
	"context"

	"github.com/magabrotheeeer/agora/internal/models"
)

// Service описывает получение списка подписчиков.
type Service interface {
	List(ctx context.Context) ([]*models.Subscriber, error)
}
