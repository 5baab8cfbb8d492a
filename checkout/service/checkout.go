package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emberline/storefront/cart"
	cartResponse "github.com/emberline/storefront/cart/pkg/response"
	"github.com/emberline/storefront/checkout/pkg/request"
	"github.com/emberline/storefront/checkout/pkg/response"
	inErrors "github.com/emberline/storefront/internal/errors"
	"github.com/emberline/storefront/internal/log"
	"github.com/emberline/storefront/internal/otel"
)

// CheckoutService implements the mocked order flow: placing an order is a
// structured log event plus a cart reset. There is no payment integration
// and no order system behind it.
type CheckoutService struct{}

func NewCheckoutService() CheckoutService {
	return CheckoutService{}
}

func (svc CheckoutService) Checkout(
	c context.Context,
	param request.Checkout,
	store *cart.Store,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService Checkout").
		Str("email", param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "snapshotting cart").Logger()
	logger.Info().Msg("snapshotting cart")
	snapshot := cartResponse.FromItems(store.Snapshot())
	if len(snapshot.Items) == 0 {
		err := fmt.Errorf("failed checking out with error=%w", inErrors.ErrEmptyCart)
		inErrors.HandleError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("snapshotted cart with %d items", len(snapshot.Items))

	order := response.Order{
		ID:        uuid.New(),
		Email:     param.Email,
		Items:     snapshot.Items,
		Total:     snapshot.Total,
		ItemCount: snapshot.ItemCount,
		PlacedAt:  time.Now().UTC(),
	}

	logger = logger.With().
		Str(log.KeyProcess, "placing order").
		Str(log.KeyOrderID, order.ID.String()).
		Logger()
	span.AddEvent("order placed")
	logger.Info().
		Any(log.KeyOrder, order).
		Str(log.KeyCartTotal, order.Total.String()).
		Int(log.KeyCartItemCount, order.ItemCount).
		Msg("order placed")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	store.Clear(c)
	logger.Info().Msg("cleared cart")

	return order, nil
}
