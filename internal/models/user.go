// Package models содержит доменные структуры Agora: пользователя,
// статью и подписчика рассылки. Структуры используются в бизнес‑логике,
// хранилище и при формировании JSON‑ответов.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64  // Суррогатный ключ
	Name         string // Отображаемое имя
	Email        string // Электронная почта (уникальная)
	PasswordHash string // bcrypt-хэш пароля, наружу не отдаётся
	IsAdmin      bool   // Флаг администратора, ни на что не влияет кроме ответа
}

// PublicUser публичное представление пользователя без хеша пароля.
type PublicUser struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Public возвращает представление пользователя, безопасное для ответа клиенту.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	}
}
