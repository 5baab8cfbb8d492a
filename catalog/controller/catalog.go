package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/emberline/storefront/catalog/pkg/request"
	"github.com/emberline/storefront/catalog/service"
	inErrors "github.com/emberline/storefront/internal/errors"
	commonHttp "github.com/emberline/storefront/internal/http"
	"github.com/emberline/storefront/internal/log"
	"github.com/emberline/storefront/internal/otel"
)

type CatalogController struct {
	service *service.CatalogService
}

func AttachCatalogController(router *mux.Router, service *service.CatalogService) {
	controller := CatalogController{service: service}

	router.HandleFunc("/products", controller.FindProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{productId}", controller.FindProductById).
		Methods(http.MethodGet)
	router.HandleFunc("/categories", controller.Categories).Methods(http.MethodGet)
}

func (t CatalogController) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindProducts").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing query filters").Logger()
	logger.Info().Msg("parsing query filters")
	query := r.URL.Query()
	param := request.FindProducts{
		Search:   query.Get("search"),
		Category: query.Get("category"),
	}
	for name, target := range map[string]**decimal.Decimal{
		"min_price": &param.MinPrice,
		"max_price": &param.MaxPrice,
	} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		price, err := decimal.NewFromString(raw)
		if err != nil {
			err = fmt.Errorf("failed parsing %s=%s with error=%w", name, raw, err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusBadRequest,
				"message":    err.Error(),
			})
			return
		}
		*target = &price
	}
	logger.Info().Msg("parsed query filters")

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	logger.Info().Msg("finding products")
	c = logger.WithContext(c)
	products := t.service.FindProducts(c, param)
	logger.Info().Msgf("found %d products", len(products))

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully found products",
		"data": map[string]interface{}{
			"products": products,
		},
	})
}

func (t CatalogController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindProductById").
		Str(log.KeyProcess, "parsing productId").
		Logger()

	logger.Info().Msg("parsing productId")
	pathValues := mux.Vars(r)
	productId, err := strconv.ParseInt(pathValues["productId"], 10, 64)
	if err != nil {
		err = fmt.Errorf("failed parsing productId=%s with error=%w", pathValues["productId"], err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Int64(log.KeyProductID, productId).Logger()
	logger.Info().Msg("parsed productId")

	logger = logger.With().Str(log.KeyProcess, "finding product by id").Logger()
	logger.Info().Msg("finding product by id")
	c = logger.WithContext(c)
	product, err := t.service.FindProductById(c, productId)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%d with error=%w", productId, err)
		inErrors.HandleError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found product by id")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully found product",
		"data": map[string]interface{}{
			"product": product,
		},
	})
}

func (t CatalogController) Categories(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController Categories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController Categories").
		Str(log.KeyProcess, "listing categories").
		Logger()

	logger.Info().Msg("listing categories")
	c = logger.WithContext(c)
	categories := t.service.Categories(c)
	logger.Info().Msgf("listed %d categories", len(categories))

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully listed categories",
		"data": map[string]interface{}{
			"categories": categories,
		},
	})
}
