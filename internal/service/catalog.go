package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/mykafka"
	"github.com/Skotchmaster/marketplace/internal/opt"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/transport"
)

type CatalogService struct {
	Repo     ProductRepository
	Users    UserRepository
	Producer EventPublisher
	Index    ProductIndexer
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter) ([]models.Product, error) {
	items, err := s.Repo.SearchProducts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return items, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return prod, nil
}

func (s *CatalogService) GetSellerProducts(ctx context.Context, sellerID uint) ([]models.Product, error) {
	items, err := s.Repo.GetProductsBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("get seller products: %w", err)
	}
	return items, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	sellerID, ok := opt.FromPtr(req.SellerID).Get()
	if !ok {
		return nil, ErrSellerNotFound
	}

	seller, err := s.Users.GetUserByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("get seller: %w", err)
	}
	if seller.Role != models.RoleSeller {
		return nil, ErrNotSeller
	}

	price := opt.FromPtr(req.Price).OrElse(0.0)
	prod := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       &price,
		ImageURL:    req.ImageURL,
		SellerID:    seller.ID,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	prod.Seller = *seller

	publish(ctx, s.Producer, mykafka.TopicProductEvents, mykafka.ProductCreated(prod))
	s.indexProduct(ctx, prod)
	return prod, nil
}

// DeleteProduct removes productID when claimed names its seller. An absent
// claim never owns anything.
func (s *CatalogService) DeleteProduct(ctx context.Context, productID uint, claimed opt.Value[uint]) error {
	sellerID, ok := claimed.Get()
	if !ok {
		return s.missingOrForbidden(ctx, productID)
	}

	err := s.Repo.DeleteOwnedProduct(ctx, productID, sellerID)
	if errors.Is(err, repo.ErrNotFound) {
		return s.missingOrForbidden(ctx, productID)
	}
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	publish(ctx, s.Producer, mykafka.TopicProductEvents, mykafka.ProductDeleted(productID, sellerID))
	s.unindexProduct(ctx, productID)
	return nil
}

// missingOrForbidden explains why a delete matched no row.
func (s *CatalogService) missingOrForbidden(ctx context.Context, productID uint) error {
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("get product: %w", err)
	}
	return ErrNotOwner
}

func (s *CatalogService) indexProduct(ctx context.Context, prod *models.Product) {
	if s.Index == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	if err := s.Index.IndexProduct(ctx, prod); err != nil {
		logging.FromContext(ctx).Error("index_product_failed", "product_id", prod.ID, "error", err)
	}
}

func (s *CatalogService) unindexProduct(ctx context.Context, productID uint) {
	if s.Index == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	if err := s.Index.DeleteProduct(ctx, productID); err != nil {
		logging.FromContext(ctx).Error("unindex_product_failed", "product_id", productID, "error", err)
	}
}
