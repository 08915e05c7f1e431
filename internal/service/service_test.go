package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/config"
	"github.com/Skotchmaster/marketplace/internal/db"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/mykafka"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	gdb, err := db.Open(context.Background(), config.Config{DBDriver: db.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err, "failed to open in-memory db")
	t.Cleanup(func() { _ = db.Close(gdb) })

	return repo.New(gdb)
}

type published struct {
	topic string
	key   string
	event mykafka.Event
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ev, ok := event.(mykafka.Event); ok {
		f.events = append(f.events, published{topic: topic, key: key, event: ev})
	}
	return f.err
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, p := range f.events {
		out = append(out, p.event.Type)
	}
	return out
}

type fakeIndexer struct {
	indexed []uint
	deleted []uint
	err     error
}

func (f *fakeIndexer) IndexProduct(_ context.Context, p *models.Product) error {
	f.indexed = append(f.indexed, p.ID)
	return f.err
}

func (f *fakeIndexer) DeleteProduct(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

var errBroker = errors.New("broker down")

func seedUser(t *testing.T, r *repo.GormRepo, id uint, email string, role models.Role, shop *string) *models.User {
	t.Helper()

	u := &models.User{
		ID:       id,
		Email:    email,
		Username: "user_" + email,
		Password: "hashed",
		Role:     role,
		ShopName: shop,
	}
	require.NoError(t, r.CreateUserIfNotExists(context.Background(), u))
	return u
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }

func floatPtr(v float64) *float64 { return &v }
