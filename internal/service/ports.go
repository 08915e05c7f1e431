package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/marketplace/internal/es"
	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/mykafka"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

// sideEffectTimeout bounds best-effort calls to the search index.
const sideEffectTimeout = 5 * time.Second

type UserRepository interface {
	CreateUserIfNotExists(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type ProductRepository interface {
	SearchProducts(ctx context.Context, f repo.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetProductsBySeller(ctx context.Context, sellerID uint) ([]models.Product, error)
	CreateProduct(ctx context.Context, prod *models.Product) error
	DeleteOwnedProduct(ctx context.Context, productID, sellerID uint) error
}

// EventPublisher is satisfied by *mykafka.Producer. A nil publisher disables events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// ProductIndexer is satisfied by *es.Index. A nil indexer disables indexing.
type ProductIndexer interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

type ProductSearcher interface {
	Search(ctx context.Context, query string) (int64, []es.Document, error)
}

func publish(ctx context.Context, p EventPublisher, topic string, ev mykafka.Event) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, ev.Key(), ev); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "topic", topic, "type", ev.Type, "error", err)
	}
}
