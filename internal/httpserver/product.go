package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/middleware/auth"
	"github.com/Skotchmaster/marketplace/internal/opt"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/transport"
)

const (
	msgStorage         = "storage unavailable"
	msgSellerNotFound  = "Seller not found!"
	msgNotSeller       = "User is not a seller!"
	msgProductNotFound = "Product not found"
	msgNotOwner        = "You are not authorized to delete this product"
	msgDeleted         = "Product deleted successfully"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

// queryOpt distinguishes ?search= (present, empty) from no parameter at all.
func queryOpt(q url.Values, key string) opt.Value[string] {
	if vs, ok := q[key]; ok && len(vs) > 0 {
		return opt.Some(vs[0])
	}
	return opt.None[string]()
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// claimedSeller merges the body sellerId with the token principal, if any.
// A principal fills in an omitted id and must equal a given one.
func claimedSeller(c echo.Context, body *uint) (*uint, error) {
	principal, ok := auth.Principal(c)
	if !ok {
		return body, nil
	}
	if body == nil {
		return &principal, nil
	}
	if *body != principal {
		return nil, service.ErrPrincipalMismatch
	}
	return body, nil
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	q := c.QueryParams()
	filter := repo.ProductFilter{
		Name:     queryOpt(q, "search"),
		ShopName: queryOpt(q, "shopName"),
	}

	items, err := h.Svc.ListProducts(ctx, filter)
	if err != nil {
		l.Error("get_products_error", "status", 500, "reason", "cannot query products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgStorage)
	}

	l.Info("get_products_success", "count", len(items))
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not a positive integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product not found", "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgStorage)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetSellerProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_seller_products")

	sellerID, err := parseID(c.Param("sellerId"))
	if err != nil {
		l.Warn("get_seller_products_failed", "status", 400, "reason", "id is not a positive integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid seller id")
	}

	items, err := h.Svc.GetSellerProducts(ctx, sellerID)
	if err != nil {
		l.Error("get_seller_products_failed", "status", 500, "reason", "cannot query products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgStorage)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sellerID, err := claimedSeller(c, req.SellerID)
	if err != nil {
		l.Warn("product_create_error", "status", 403, "reason", "sellerId differs from token subject")
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	req.SellerID = sellerID

	created, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSellerNotFound):
			l.Warn("product_create_error", "status", 400, "reason", "seller not found")
			return echo.NewHTTPError(http.StatusBadRequest, msgSellerNotFound)
		case errors.Is(err, service.ErrNotSeller):
			l.Warn("product_create_error", "status", 403, "reason", "user is not a seller")
			return echo.NewHTTPError(http.StatusForbidden, msgNotSeller)
		default:
			l.Error("product_create_error", "status", 500, "reason", "cannot add product to db", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, msgStorage)
		}
	}

	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	var req transport.DeleteProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_delete_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == nil {
		l.Warn("product_delete_error", "status", 400, "reason", "productId missing")
		return echo.NewHTTPError(http.StatusBadRequest, "productId is required")
	}

	sellerID, err := claimedSeller(c, req.SellerID)
	if err != nil {
		l.Warn("product_delete_error", "status", 403, "reason", "sellerId differs from token subject")
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}

	if err := h.Svc.DeleteProduct(ctx, *req.ProductID, opt.FromPtr(sellerID)); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			l.Warn("product_delete_error", "status", 404, "reason", "product not found", "product_id", *req.ProductID)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		case errors.Is(err, service.ErrNotOwner):
			l.Warn("product_delete_error", "status", 403, "reason", "not the owner", "product_id", *req.ProductID)
			return echo.NewHTTPError(http.StatusForbidden, msgNotOwner)
		default:
			l.Error("product_delete_error", "status", 500, "reason", "cannot delete product from db", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, msgStorage)
		}
	}

	l.Info("delete_product_success", "product_id", *req.ProductID)
	return c.String(http.StatusOK, msgDeleted)
}
