// Package newsletter содержит бизнес-логику подписки на рассылку.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/agora/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/agora/internal/lib/sl"
	"github.com/magabrotheeeer/agora/internal/models"
	"github.com/magabrotheeeer/agora/internal/storage/repository"
)

// Repository определяет методы для работы с подписчиками в хранилище.
type Repository interface {
	CreateSubscriber(ctx context.Context, email string) (int64, error)
	ListSubscribers(ctx context.Context) ([]*models.Subscriber, error)
}

// Publisher отправляет события в брокер сообщений.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service управляет списком подписчиков.
type Service struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
}

// NewService создает новый экземпляр Service. publisher может быть nil,
// тогда события о подписке не публикуются.
func NewService(repo Repository, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Subscribe подписывает email. Возвращает false без ошибки, если email уже подписан.
func (s *Service) Subscribe(ctx context.Context, email string) (bool, error) {
	const op = "services.newsletter.Subscribe"

	if _, err := s.repo.CreateSubscriber(ctx, email); err != nil {
		if errors.Is(err, repository.ErrSubscriberExists) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if s.publisher != nil {
		event := models.SubscribedEvent{Email: email, SubscribedAt: time.Now().UTC()}
		if err := s.publisher.Publish(ctx, rabbitmq.RoutingKeySubscribed, event); err != nil {
			s.log.Warn("failed to publish subscribed event", sl.Err(err))
		}
	}
	return true, nil
}

// List возвращает всех подписчиков.
func (s *Service) List(ctx context.Context) ([]*models.Subscriber, error) {
	const op = "services.newsletter.List"

	subs, err := s.repo.ListSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}
