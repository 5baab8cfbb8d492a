package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emberline/storefront/catalog/pkg/product"
	"github.com/emberline/storefront/catalog/pkg/request"
	inErrors "github.com/emberline/storefront/internal/errors"
	"github.com/emberline/storefront/internal/log"
	"github.com/emberline/storefront/internal/otel"
)

//go:embed data/products.json
var productsJson []byte

// CatalogService serves the static product catalog. The catalog is loaded
// once at construction and never mutated; file order is preserved.
type CatalogService struct {
	products   []product.Product
	categories []string
}

func NewCatalogService(c context.Context) (CatalogService, error) {
	c, span := otel.Tracer.Start(c, "NewCatalogService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NewCatalogService").
		Str(log.KeyProcess, "loading catalog").
		Logger()

	logger.Info().Msg("loading catalog")
	products := []product.Product{}
	err := json.Unmarshal(productsJson, &products)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling catalog with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return CatalogService{}, err
	}

	seen := map[string]bool{}
	categories := []string{}
	for _, p := range products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	logger.Info().Msgf("loaded catalog with %d products", len(products))

	return CatalogService{products: products, categories: categories}, nil
}

func (svc CatalogService) FindProducts(
	c context.Context,
	param request.FindProducts,
) []product.Product {
	c, span := otel.Tracer.Start(c, "CatalogService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindProducts").
		Str(log.KeyCategory, param.Category).
		Str("search", param.Search).
		Logger()

	search := strings.ToLower(param.Search)
	filtered := make([]product.Product, 0, len(svc.products))
	for _, p := range svc.products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if param.Category != "" && p.Category != param.Category {
			continue
		}
		if param.MinPrice != nil && p.Price.LessThan(*param.MinPrice) {
			continue
		}
		if param.MaxPrice != nil && p.Price.GreaterThan(*param.MaxPrice) {
			continue
		}
		filtered = append(filtered, p)
	}
	logger.Info().Msgf("found %d products", len(filtered))

	return filtered
}

func (svc CatalogService) FindProductById(
	c context.Context,
	id int64,
) (product.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindProductById").
		Int64(log.KeyProductID, id).
		Logger()

	for _, p := range svc.products {
		if p.ID == id {
			return p, nil
		}
	}

	err := fmt.Errorf("failed finding productId=%d with error=%w", id, inErrors.ErrProductNotFound)
	inErrors.HandleError(err, span)
	logger.Info().Err(err).Msg(err.Error())
	return product.Product{}, err
}

func (svc CatalogService) Categories(c context.Context) []string {
	_, span := otel.Tracer.Start(c, "CatalogService Categories")
	defer span.End()

	categories := make([]string, len(svc.categories))
	copy(categories, svc.categories)
	return categories
}
