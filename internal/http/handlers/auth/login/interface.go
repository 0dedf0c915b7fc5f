package login

import (
	"context"

	"github.com/magabrotheeeer/agora/internal/models"
)

// Service описывает проверку учётных данных.
type Service interface {
	Login(ctx context.Context, email, password string) (models.User, error)
}
