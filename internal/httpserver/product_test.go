package httpserver

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/models"
)

func createProduct(t *testing.T, env *testEnv, body map[string]any) models.Product {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/products/add", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Product](t, rec)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 7, "seller@example.com", models.RoleSeller, strPtr("Acme"))
	env.seedUser(t, 8, "buyer@example.com", models.RoleCustomer, nil)

	t.Run("price omitted defaults to zero", func(t *testing.T) {
		p := createProduct(t, env, map[string]any{"name": "Widget", "imageUrl": "https://img/w.png", "sellerId": 7})
		assert.NotZero(t, p.ID)
		require.NotNil(t, p.Price)
		assert.Equal(t, 0.0, *p.Price)
		assert.Equal(t, "https://img/w.png", p.ImageURL)
		assert.Equal(t, uint(7), p.SellerID)
		assert.Equal(t, "seller@example.com", p.Seller.Email)
	})

	tests := []struct {
		name    string
		body    map[string]any
		status  int
		message string
	}{
		{name: "unknown seller", body: map[string]any{"name": "X", "sellerId": 99}, status: http.StatusBadRequest, message: "Seller not found!"},
		{name: "no seller", body: map[string]any{"name": "X"}, status: http.StatusBadRequest, message: "Seller not found!"},
		{name: "customer", body: map[string]any{"name": "X", "sellerId": 8}, status: http.StatusForbidden, message: "User is not a seller!"},
		{name: "bad body", body: map[string]any{"sellerId": "seven"}, status: http.StatusBadRequest, message: "invalid body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/products/add", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, message(t, rec))
		})
	}
}

func TestCreateProduct_Principal(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 7, "s7@example.com", models.RoleSeller, nil)
	env.seedUser(t, 8, "s8@example.com", models.RoleSeller, nil)

	t.Run("token fills in sellerId", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/products/add", map[string]any{"name": "Widget"}, env.bearer(t, 7, models.RoleSeller))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, uint(7), decode[models.Product](t, rec).SellerID)
	})

	t.Run("token must match sellerId", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/products/add", map[string]any{"name": "Widget", "sellerId": 8}, env.bearer(t, 7, models.RoleSeller))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("invalid token falls back to body sellerId", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/products/add", map[string]any{"name": "Widget", "sellerId": 7}, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer garbage")
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, uint(7), decode[models.Product](t, rec).SellerID)
	})
}

func TestCreateProduct_RequireToken(t *testing.T) {
	env := newTestEnv(t, requireToken)
	env.seedUser(t, 7, "s7@example.com", models.RoleSeller, nil)

	rec := env.do(t, http.MethodPost, "/api/products/add", map[string]any{"name": "Widget", "sellerId": 7})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/products/add", map[string]any{"name": "Widget", "sellerId": 7}, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer garbage")
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/products/add", map[string]any{"name": "Widget"}, env.bearer(t, 7, models.RoleSeller))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGetProducts(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 1, "tech@example.com", models.RoleSeller, strPtr("Tech Corner"))
	env.seedUser(t, 2, "books@example.com", models.RoleSeller, strPtr("Book Nook"))
	env.seedUser(t, 3, "noshop@example.com", models.RoleSeller, nil)

	createProduct(t, env, map[string]any{"name": "Widget", "sellerId": 1})
	createProduct(t, env, map[string]any{"name": "Gadget", "sellerId": 1})
	createProduct(t, env, map[string]any{"name": "Widget Manual", "sellerId": 2})
	createProduct(t, env, map[string]any{"name": "Orphan Widget", "sellerId": 3})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "no filters", query: "", want: []string{"Widget", "Gadget", "Widget Manual", "Orphan Widget"}},
		{name: "search", query: "?search=Widget", want: []string{"Widget", "Widget Manual", "Orphan Widget"}},
		{name: "empty search matches all", query: "?search=", want: []string{"Widget", "Gadget", "Widget Manual", "Orphan Widget"}},
		{name: "empty shopName drops sellers without a shop", query: "?shopName=", want: []string{"Widget", "Gadget", "Widget Manual"}},
		{name: "combined", query: "?search=Widget&shopName=Nook", want: []string{"Widget Manual"}},
		{name: "no match", query: "?search=Sprocket", want: []string{}},
		{name: "search is case-sensitive", query: "?search=widget", want: []string{}},
		{name: "underscore is literal", query: "?search=G_dget", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/products"+tt.query, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			items := decode[[]models.Product](t, rec)
			got := make([]string, 0, len(items))
			for _, p := range items {
				got = append(got, p.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 7, "s7@example.com", models.RoleSeller, strPtr("Acme"))
	p := createProduct(t, env, map[string]any{"name": "Widget", "price": 12.5, "sellerId": 7})

	rec := env.do(t, http.MethodGet, "/api/products/"+strconv.Itoa(int(p.ID)), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[models.Product](t, rec)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 12.5, *got.Price)
	assert.Equal(t, "Acme", *got.Seller.ShopName)

	rec = env.do(t, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", message(t, rec))

	rec = env.do(t, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSellerProducts(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 7, "s7@example.com", models.RoleSeller, nil)
	env.seedUser(t, 8, "s8@example.com", models.RoleSeller, nil)
	createProduct(t, env, map[string]any{"name": "A", "sellerId": 7})
	createProduct(t, env, map[string]any{"name": "B", "sellerId": 8})
	createProduct(t, env, map[string]any{"name": "C", "sellerId": 7})

	rec := env.do(t, http.MethodGet, "/api/products/seller/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]models.Product](t, rec)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, "C", items[1].Name)

	rec = env.do(t, http.MethodGet, "/api/products/seller/42", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/products/seller/x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProduct_OwnershipScenario(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 7, "s7@example.com", models.RoleSeller, strPtr("Seven"))
	env.seedUser(t, 8, "s8@example.com", models.RoleSeller, strPtr("Eight"))

	p := createProduct(t, env, map[string]any{"name": "Widget", "sellerId": 7})
	assert.Equal(t, 0.0, *p.Price)
	path := "/api/products/" + strconv.Itoa(int(p.ID))

	rec := env.do(t, http.MethodDelete, "/api/products/delete", map[string]any{"productId": p.ID, "sellerId": 8})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You are not authorized to delete this product", message(t, rec))

	rec = env.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/products/delete", map[string]any{"productId": p.ID, "sellerId": 7})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product deleted successfully", rec.Body.String())

	rec = env.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/products/delete", map[string]any{"productId": p.ID, "sellerId": 7})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", message(t, rec))
}

func TestDeleteProduct_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 7, "s7@example.com", models.RoleSeller, nil)
	p := createProduct(t, env, map[string]any{"name": "Widget", "sellerId": 7})

	tests := []struct {
		name   string
		body   map[string]any
		auth   bool
		status int
	}{
		{name: "missing productId", body: map[string]any{"sellerId": 7}, status: http.StatusBadRequest},
		{name: "missing sellerId", body: map[string]any{"productId": p.ID}, status: http.StatusForbidden},
		{name: "unknown product", body: map[string]any{"productId": 999, "sellerId": 7}, status: http.StatusNotFound},
		{name: "token mismatch", body: map[string]any{"productId": p.ID, "sellerId": 8}, auth: true, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mutate []func(*http.Request)
			if tt.auth {
				mutate = append(mutate, env.bearer(t, 7, models.RoleSeller))
			}
			rec := env.do(t, http.MethodDelete, "/api/products/delete", tt.body, mutate...)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	rec := env.do(t, http.MethodDelete, "/api/products/delete", map[string]any{"productId": p.ID}, env.bearer(t, 7, models.RoleSeller))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health/ready", nil).Code)
}
