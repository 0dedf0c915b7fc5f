package models

import "time"

// Subscriber подписчик новостной рассылки.
type Subscriber struct {
	ID    int64  `json:"-"`
	Email string `json:"email"`
}

// SubscribedEvent публикуется в брокер при появлении нового подписчика.
type SubscribedEvent struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
