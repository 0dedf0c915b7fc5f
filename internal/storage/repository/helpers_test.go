package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/agora/internal/migrations"
	"github.com/magabrotheeeer/agora/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateArticle вставляет статью с заданным заголовком напрямую в таблицу
func (f *TestDataFactory) CreateArticle(t *testing.T, title string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO articles
		(title, excerpt, content, category, access, author, date)
		VALUES ($1, 'excerpt', 'content', 'markets', 'free', 'tester', '2026-01-01') RETURNING id`,
		title).Scan(&id)
	require.NoError(t, err)
	return id
}

// newTestUser возвращает пользователя с уникальным email
func newTestUser() models.User {
	return models.User{
		Name:         "Tester",
		Email:        fmt.Sprintf("%s@agora.test", uuid.NewString()),
		PasswordHash: "$2a$10$hashedpasswordhashedpasswordhashedpasswordhashedpa",
	}
}

// countRows возвращает количество строк в таблице с заданным email
func countRows(t *testing.T, s *Storage, table, email string) int {
	var count int
	err := s.DB.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE email = $1", table), email).Scan(&count)
	require.NoError(t, err)
	return count
}

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("agora"),
		postgres.WithUsername("agora"),
		postgres.WithPassword("agora"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(ctx, dsn)
	require.NoError(t, err, "failed to create storage")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath), "failed to run migrations")

	cleanup := func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}
