package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/config"
	"github.com/Skotchmaster/marketplace/internal/db"
	"github.com/Skotchmaster/marketplace/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	gdb, err := db.Open(context.Background(), config.Config{DBDriver: db.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err, "failed to open in-memory db")
	t.Cleanup(func() { _ = db.Close(gdb) })

	return New(gdb)
}

func seedUser(t *testing.T, r *GormRepo, email string, role models.Role, shop *string) *models.User {
	t.Helper()

	u := &models.User{
		Email:    email,
		Username: "user_" + email,
		Password: "hashed",
		Role:     role,
		ShopName: shop,
	}
	require.NoError(t, r.CreateUserIfNotExists(context.Background(), u))
	require.NotZero(t, u.ID)
	return u
}

func seedProduct(t *testing.T, r *GormRepo, name string, seller *models.User) *models.Product {
	t.Helper()

	price := 10.0
	p := &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       &price,
		ImageURL:    "https://img.example.com/" + name,
		SellerID:    seller.ID,
	}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	require.NotZero(t, p.ID)
	return p
}

func strPtr(s string) *string { return &s }
