package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/opt"
)

// ProductFilter constrains SearchProducts. An absent field places no
// constraint; a present one is a literal, case-sensitive substring match.
type ProductFilter struct {
	Name     opt.Value[string]
	ShopName opt.Value[string]
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns v into a LIKE pattern matching it as a literal substring.
func containsPattern(v string) string {
	return "%" + likeEscaper.Replace(v) + "%"
}

func (r *GormRepo) SearchProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN users ON users.id = products.seller_id").
		Preload("Seller")

	if name, ok := f.Name.Get(); ok {
		q = q.Where(`products.name LIKE ? ESCAPE '\'`, containsPattern(name))
	}
	if shop, ok := f.ShopName.Get(); ok {
		q = q.Where(`users.shop_name LIKE ? ESCAPE '\'`, containsPattern(shop))
	}

	items := make([]models.Product, 0)
	if err := q.Order("products.id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Seller").Where("id = ?", id).First(&product).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *GormRepo) GetProductsBySeller(ctx context.Context, sellerID uint) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).
		Preload("Seller").
		Where("seller_id = ?", sellerID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateProduct inserts prod without touching the seller row.
func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Omit("Seller").Create(prod).Error
}

// DeleteOwnedProduct removes the product only if sellerID owns it.
// ErrNotFound means no row matched: either the product is gone or the owner differs.
func (r *GormRepo) DeleteOwnedProduct(ctx context.Context, productID, sellerID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND seller_id = ?", productID, sellerID).
		Delete(&models.Product{})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
