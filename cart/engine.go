// Package cart owns the canonical in-memory cart: the single cart state the
// view layer trusts. Every intent goes to the Remote Commerce API and the
// server response replaces the canonical cart wholesale, except the remove
// path which derives the next state locally because the remove endpoint
// returns no body.
package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/commerce"
	"github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/validate"
)

var tracer = otel.Tracer("storefront-cart")

type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is a read-only snapshot for the view layer. Cart is a copy; the
// canonical cart is mutated only by the engine.
type State struct {
	Cart         *response.Cart
	ErrorMessage string
	Status       Status
	CartOpen     bool
}

// CommerceClient is the slice of the commerce api the engine needs.
type CommerceClient interface {
	FindCart(c context.Context) (response.Cart, error)
	AddCartItem(c context.Context, param request.AddCartItem) (response.Cart, error)
	UpdateCartItem(c context.Context, param request.UpdateCartItem) (response.Cart, error)
	RemoveCartItem(c context.Context, cartItemId uuid.UUID) error
	ClearCart(c context.Context) error
}

// Engine accepts concurrent intents without queueing or coalescing: whichever
// response settles last writes the canonical cart (last-settled-wins). There
// is no cancellation and no automatic retry.
type Engine struct {
	client       CommerceClient
	logger       zerolog.Logger
	cart         *response.Cart
	errorMessage string
	pricing      Pricing
	status       Status
	cartOpen     bool
	mu           sync.Mutex
}

func NewEngine(client CommerceClient, pricing Pricing, logger zerolog.Logger) *Engine {
	return &Engine{client: client, pricing: pricing, logger: logger, status: StatusIdle}
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := State{
		Status:       e.status,
		ErrorMessage: e.errorMessage,
		CartOpen:     e.cartOpen,
	}
	if e.cart != nil {
		copied := *e.cart
		copied.CartItems = append([]response.CartItem(nil), e.cart.CartItems...)
		state.Cart = &copied
	}
	return state
}

// Quote prices the canonical cart for display. An absent cart quotes as
// empty.
func (e *Engine) Quote() Quote {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cart == nil {
		return e.pricing.QuoteSubtotal(response.Cart{}.Subtotal())
	}
	return e.pricing.QuoteSubtotal(e.cart.Subtotal())
}

// Fetch replaces the canonical cart with the server cart. On failure any
// previously cached cart stays visible (stale but available).
func (e *Engine) Fetch(c context.Context) error {
	c, span := tracer.Start(c, "Engine Fetch")
	defer span.End()

	logger := e.logger.With().
		Str(log.KeyTag, "Engine Fetch").
		Logger()

	e.begin()

	logger = logger.With().Str(log.KeyProcess, "fetching cart").Logger()
	logger.Info().Msg("fetching cart")
	cart, err := e.client.FindCart(c)
	if err != nil {
		err = fmt.Errorf("failed fetching cart with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		e.fail(err, commerce.MsgFetchFailed)
		return err
	}
	logger.Info().Str(log.KeyCartId, cart.ID.String()).Msg("fetched cart")

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart = &cart
	e.status = StatusSucceeded
	e.errorMessage = ""
	return nil
}

// Add validates quantity locally, then replaces the canonical cart with the
// full server cart so price, totals and stock-derived fields stay server
// authoritative. A missing variant on a sized product is a view-layer
// precondition, not checked here. On success the cart is marked open.
func (e *Engine) Add(
	c context.Context,
	productId uuid.UUID,
	quantity int32,
	productVariantId *uuid.UUID,
) error {
	c, span := tracer.Start(c, "Engine Add")
	defer span.End()

	logger := e.logger.With().
		Str(log.KeyTag, "Engine Add").
		Str(log.KeyProductId, productId.String()).
		Int32(log.KeyQuantity, quantity).
		Logger()

	e.begin()

	param := request.AddCartItem{
		ProductId:        productId,
		Quantity:         quantity,
		ProductVariantId: productVariantId,
	}
	logger = logger.With().Str(log.KeyProcess, "validating add request").Logger()
	if err := validate.Get().StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating add request with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		intentErr := errors.NewIntentError(errors.KindValidation, commerce.MsgAddFailed, err)
		e.fail(intentErr, commerce.MsgAddFailed)
		return intentErr
	}

	logger = logger.With().Str(log.KeyProcess, "adding cart item").Logger()
	logger.Info().Msg("adding cart item")
	cart, err := e.client.AddCartItem(c, param)
	if err != nil {
		err = fmt.Errorf("failed adding cart item with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		e.fail(err, commerce.MsgAddFailed)
		return err
	}
	logger.Info().Str(log.KeyCartId, cart.ID.String()).Msg("added cart item")

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart = &cart
	e.cartOpen = true
	e.status = StatusSucceeded
	e.errorMessage = ""
	return nil
}

// UpdateQuantity carries no local floor: 0 or negative quantities are the
// remote side's to reject, callers disable decrement at 1.
func (e *Engine) UpdateQuantity(c context.Context, cartItemId uuid.UUID, quantity int32) error {
	c, span := tracer.Start(c, "Engine UpdateQuantity")
	defer span.End()

	logger := e.logger.With().
		Str(log.KeyTag, "Engine UpdateQuantity").
		Str(log.KeyCartItemId, cartItemId.String()).
		Int32(log.KeyQuantity, quantity).
		Logger()

	e.begin()

	logger = logger.With().Str(log.KeyProcess, "updating cart item quantity").Logger()
	logger.Info().Msg("updating cart item quantity")
	param := request.UpdateCartItem{CartItemId: cartItemId, Quantity: quantity}
	cart, err := e.client.UpdateCartItem(c, param)
	if err != nil {
		err = fmt.Errorf("failed updating cart item quantity with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		e.fail(err, commerce.MsgUpdateFailed)
		return err
	}
	logger.Info().Str(log.KeyCartId, cart.ID.String()).Msg("updated cart item quantity")

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart = &cart
	e.status = StatusSucceeded
	e.errorMessage = ""
	return nil
}

// Remove is the one optimistic path: the remove endpoint returns no body, so
// on success the item is filtered out locally and the total recomputed as the
// sum of the remaining price*quantity. The next Fetch is the only correction
// mechanism if this ever disagrees with server truth.
func (e *Engine) Remove(c context.Context, cartItemId uuid.UUID) error {
	c, span := tracer.Start(c, "Engine Remove")
	defer span.End()

	logger := e.logger.With().
		Str(log.KeyTag, "Engine Remove").
		Str(log.KeyCartItemId, cartItemId.String()).
		Logger()

	e.begin()

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Info().Msg("removing cart item")
	err := e.client.RemoveCartItem(c, cartItemId)
	if err != nil {
		err = fmt.Errorf("failed removing cart item with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		e.fail(err, commerce.MsgRemoveFailed)
		return err
	}
	logger.Info().Msg("removed cart item")

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cart != nil {
		remaining := make([]response.CartItem, 0, len(e.cart.CartItems))
		for _, item := range e.cart.CartItems {
			if item.ID == cartItemId {
				continue
			}
			remaining = append(remaining, item)
		}
		e.cart.CartItems = remaining
		e.cart.TotalAmount = e.cart.Subtotal()
	}
	e.status = StatusSucceeded
	e.errorMessage = ""
	return nil
}

// Clear empties the canonical cart and closes the cart flag.
func (e *Engine) Clear(c context.Context) error {
	c, span := tracer.Start(c, "Engine Clear")
	defer span.End()

	logger := e.logger.With().
		Str(log.KeyTag, "Engine Clear").
		Logger()

	e.begin()

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	err := e.client.ClearCart(c)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		errors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		e.fail(err, commerce.MsgClearFailed)
		return err
	}
	logger.Info().Msg("cleared cart")

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart = nil
	e.cartOpen = false
	e.status = StatusSucceeded
	e.errorMessage = ""
	return nil
}

// OpenCart and CloseCart toggle the cart-visible flag for the view layer.
func (e *Engine) OpenCart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cartOpen = true
}

func (e *Engine) CloseCart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cartOpen = false
}

func (e *Engine) begin() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = StatusPending
}

func (e *Engine) fail(err error, fallback string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = StatusFailed
	e.errorMessage = errors.DisplayMessage(err, fallback)
}
