package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/emberline/storefront/cart"
	cartController "github.com/emberline/storefront/cart/controller"
	catalogController "github.com/emberline/storefront/catalog/controller"
	catalogService "github.com/emberline/storefront/catalog/service"
	checkoutController "github.com/emberline/storefront/checkout/controller"
	checkoutService "github.com/emberline/storefront/checkout/service"
	"github.com/emberline/storefront/internal/config"
	"github.com/emberline/storefront/internal/constants"
	inErrors "github.com/emberline/storefront/internal/errors"
	"github.com/emberline/storefront/internal/infra"
	"github.com/emberline/storefront/internal/log"
	"github.com/emberline/storefront/internal/middleware"
	"github.com/emberline/storefront/internal/otel"
	"github.com/emberline/storefront/internal/storage"
)

func RunStorefrontService(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunStorefrontService")
	defer span.End()

	logger := log.Get(filepath.Join("/var/log/", constants.APP_STOREFRONT+".log")).
		With().
		Str(log.KeyAppName, constants.APP_STOREFRONT).
		Str(log.KeyTag, "main RunStorefrontService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.Get(c, constants.APP_STOREFRONT)
	logger = logger.With().Any(log.KeyConfig, cfg).Logger()
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	router.Use(
		otelmux.Middleware(constants.APP_STOREFRONT),
		middleware.Logging,
		middleware.RecoverPanic,
		middleware.Session,
	)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_STOREFRONT, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		c = logger.WithContext(c)
		err = otel.ShutdownOtel(c, otelShutdowns)
		if err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().
		Str(log.KeyProcess, "initializing storage").
		Str(log.KeyStorageDriver, cfg.Storage.Driver).
		Logger()
	logger.Info().Msg("initializing storage")
	c = logger.WithContext(c)
	var store storage.Storage
	switch cfg.Storage.Driver {
	case "redis":
		cache := infra.NewCacheClient(c, cfg.Cache)
		defer func() {
			logger.Info().Msg("shutting down cache")
			if err := cache.Close(); err != nil {
				err = fmt.Errorf("failed shutting down cache with error=%w", err)
				inErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return
			}
			logger.Info().Msg("shutdown cache")
		}()
		store = storage.NewRedisStorage(cache)
	default:
		store, err = storage.NewFileStorage(c, cfg.Storage.Path)
		if err != nil {
			err = fmt.Errorf("failed initializing file storage with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
	}
	logger.Info().Msg("initialized storage")

	logger = logger.With().Str(log.KeyProcess, "initializing catalog service").Logger()
	logger.Info().Msg("initializing catalog service")
	c = logger.WithContext(c)
	catalog, err := catalogService.NewCatalogService(c)
	if err != nil {
		err = fmt.Errorf("failed initializing catalog service with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("initialized catalog service")

	logger = logger.With().Str(log.KeyProcess, "initializing cart manager").Logger()
	logger.Info().Msg("initializing cart manager")
	cartManager := cart.NewManager(store)
	logger.Info().Msg("initialized cart manager")

	logger = logger.With().Str(log.KeyProcess, "initializing controllers").Logger()
	logger.Info().Msg("initializing controllers")
	catalogController.AttachCatalogController(router, &catalog)
	cartController.AttachCartController(router, cartManager, &catalog)
	checkoutController.AttachCheckoutController(
		router,
		checkoutService.NewCheckoutService(),
		cartManager,
	)
	logger.Info().Msg("initialized controllers")

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	httpServer := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	go func() {
		logger = logger.With().Str(log.KeyProcess, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", httpServer.Addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("error=%w occured while server is running", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown server")
	}()

	<-c.Done()
	logger = logger.With().Str(log.KeyProcess, "shutting down http server").Logger()
	logger.Info().Msg("received interuption signal shutting down")
	err = httpServer.Shutdown(context.Background())
	if err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("shutdown http server")
}
