package signup

import (
	"context"

	"github.com/magabrotheeeer/agora/internal/models"
)

type Service interface {
	Signup(ctx context.Context, name, email, password string) (models.User, error)
}
