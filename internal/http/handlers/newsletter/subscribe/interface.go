package subscribe

import "context"

// Service описывает подписку на рассылку.
type Service interface {
	Subscribe(ctx context.Context, email string) (bool, error)
}
