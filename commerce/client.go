// Package commerce is the outbound client for the Remote Commerce API. Every
// call resolves the current identity and sends exactly one identity header.
// Failures are mapped onto the transport/validation/unknown taxonomy before
// they reach the cart engine.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/identity"
	"github.com/Alturino/storefront/internal/log"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
)

type Client struct {
	httpClient    *http.Client
	resolver      *identity.Resolver
	logger        zerolog.Logger
	baseUrl       string
	sessionHeader string
}

func NewClient(
	cfg config.Commerce,
	resolver *identity.Resolver,
	logger zerolog.Logger,
) (*Client, error) {
	if cfg.BaseUrl == "" {
		return nil, errors.ErrEmptyBaseUrl
	}
	return &Client{
		baseUrl:       strings.TrimRight(cfg.BaseUrl, "/"),
		sessionHeader: cfg.SessionHeader,
		resolver:      resolver,
		logger:        logger,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   time.Duration(cfg.TimeoutSecond) * time.Second,
		},
	}, nil
}

func (cl *Client) FindCart(c context.Context) (response.Cart, error) {
	c, span := tracer.Start(c, "Client FindCart")
	defer span.End()

	cart := response.Cart{}
	err := cl.do(c, http.MethodGet, "/cart", nil, &cart, MsgFetchFailed)
	if err != nil {
		errors.HandleError(err, span)
		return response.Cart{}, err
	}
	return cart, nil
}

func (cl *Client) AddCartItem(
	c context.Context,
	param request.AddCartItem,
) (response.Cart, error) {
	c, span := tracer.Start(c, "Client AddCartItem")
	defer span.End()

	cart := response.Cart{}
	err := cl.do(c, http.MethodPost, "/cart/add", param, &cart, MsgAddFailed)
	if err != nil {
		errors.HandleError(err, span)
		return response.Cart{}, err
	}
	return cart, nil
}

func (cl *Client) UpdateCartItem(
	c context.Context,
	param request.UpdateCartItem,
) (response.Cart, error) {
	c, span := tracer.Start(c, "Client UpdateCartItem")
	defer span.End()

	cart := response.Cart{}
	err := cl.do(c, http.MethodPut, "/cart/update", param, &cart, MsgUpdateFailed)
	if err != nil {
		errors.HandleError(err, span)
		return response.Cart{}, err
	}
	return cart, nil
}

// RemoveCartItem returns no body on success; the engine derives the next
// cart state locally.
func (cl *Client) RemoveCartItem(c context.Context, cartItemId uuid.UUID) error {
	c, span := tracer.Start(c, "Client RemoveCartItem")
	defer span.End()

	path := "/cart/remove/" + cartItemId.String()
	err := cl.do(c, http.MethodDelete, path, nil, nil, MsgRemoveFailed)
	if err != nil {
		errors.HandleError(err, span)
		return err
	}
	return nil
}

func (cl *Client) ClearCart(c context.Context) error {
	c, span := tracer.Start(c, "Client ClearCart")
	defer span.End()

	err := cl.do(c, http.MethodDelete, "/cart/clear", nil, nil, MsgClearFailed)
	if err != nil {
		errors.HandleError(err, span)
		return err
	}
	return nil
}

func (cl *Client) CheckStock(
	c context.Context,
	productVariantId uuid.UUID,
	quantity int32,
) (bool, error) {
	c, span := tracer.Start(c, "Client CheckStock")
	defer span.End()

	path := fmt.Sprintf("/products/variants/%s/stock/%d", productVariantId.String(), quantity)
	availability := productResponse.StockAvailability{}
	err := cl.do(c, http.MethodGet, path, nil, &availability, MsgStockFailed)
	if err != nil {
		errors.HandleError(err, span)
		return false, err
	}
	return availability.IsAvailable, nil
}

// MergeOnLogin is the seam for reconciling an anonymous cart into the
// post-login cart. The commerce api does not expose a merge endpoint yet and
// sending credential and session id together would break identity
// exclusivity, so this stays unsupported until the server defines one.
func (cl *Client) MergeOnLogin(c context.Context, sessionId string) error {
	_, span := tracer.Start(c, "Client MergeOnLogin")
	defer span.End()

	err := errors.ErrMergeNotSupported
	errors.HandleError(err, span)
	return err
}

func (cl *Client) do(
	c context.Context,
	method string,
	path string,
	body any,
	out any,
	fallback string,
) error {
	endpoint := cl.baseUrl + path
	logger := cl.logger.With().
		Str(log.KeyTag, "Client do").
		Str(log.KeyEndpoint, method+" "+endpoint).
		Logger()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			err = fmt.Errorf("failed marshaling request body with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return errors.NewIntentError(errors.KindUnknown, fallback, err)
		}
		reqBody = bytes.NewBuffer(encoded)
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(c, method, endpoint, reqBody)
	} else {
		req, err = http.NewRequestWithContext(c, method, endpoint, nil)
	}
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return errors.NewIntentError(errors.KindUnknown, fallback, err)
	}
	req.Header.Set("Content-Type", "application/json")

	who := cl.resolver.Resolve(c)
	who.Apply(req.Header, cl.sessionHeader)

	resp, err := cl.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending request with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return errors.NewIntentError(errors.KindTransport, fallback, err)
	}
	defer resp.Body.Close()

	logger = logger.With().Int(log.KeyStatusCode, resp.StatusCode).Logger()
	if resp.StatusCode >= http.StatusBadRequest {
		message := fallback
		failure := map[string]any{}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&failure); decodeErr == nil {
			if serverMessage, ok := failure["message"].(string); ok && serverMessage != "" {
				message = serverMessage
			}
		}
		err = fmt.Errorf("commerce api returned status code=%d with message=%s", resp.StatusCode, message)
		logger.Error().Err(err).Msg(err.Error())
		kind := errors.KindUnknown
		if resp.StatusCode < http.StatusInternalServerError {
			kind = errors.KindValidation
		}
		return errors.NewIntentError(kind, message, err)
	}

	if out == nil {
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		err = fmt.Errorf("failed decoding response body with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return errors.NewIntentError(errors.KindUnknown, fallback, err)
	}
	return nil
}
