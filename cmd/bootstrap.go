package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart"
	"github.com/Alturino/storefront/commerce"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/identity"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/storage"
	"github.com/Alturino/storefront/wishlist"
)

const appName = "storefront"

type app struct {
	cfg           *config.Config
	store         storage.Store
	resolver      *identity.Resolver
	client        *commerce.Client
	engine        *cart.Engine
	wishlist      *wishlist.Store
	otelShutdowns []otel.ShutdownFunc
}

func initApp(c context.Context) (*app, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main initApp").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, appName)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "init otel sdk").Logger()
	var otelShutdowns []otel.ShutdownFunc
	if cfg.Otel.Host != "" {
		logger.Info().Msg("initializing otel sdk")
		c = logger.WithContext(c)
		shutdowns, err := otel.InitOtelSdk(c, appName, cfg.Otel)
		if err != nil {
			err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		otelShutdowns = shutdowns
		logger.Info().Msg("initialized otel sdk")
	}

	logger = logger.With().Str(log.KeyProcess, "init storage").Logger()
	logger.Info().Msg("initializing storage")
	var store storage.Store
	if cfg.Cache.Host != "" {
		c = logger.WithContext(c)
		redisStore, err := storage.NewRedisStore(c, cfg.Cache)
		if err != nil {
			err = fmt.Errorf("failed initializing redis storage with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		store = redisStore
	} else {
		fileStore, err := storage.NewFileStore(cfg.Storage.Path, *zerolog.Ctx(c))
		if err != nil {
			// Degraded but non fatal: session id and wishlist live only for
			// this process.
			err = fmt.Errorf("failed initializing file storage with error=%w", err)
			logger.Warn().Err(err).Msg(err.Error())
			store = storage.NewMemoryStore()
		} else {
			store = fileStore
		}
	}
	logger.Info().Msg("initialized storage")

	logger = logger.With().Str(log.KeyProcess, "init commerce client").Logger()
	logger.Info().Msg("initializing commerce client")
	resolver := identity.NewResolver(store, *zerolog.Ctx(c))
	client, err := commerce.NewClient(cfg.Commerce, resolver, *zerolog.Ctx(c))
	if err != nil {
		err = fmt.Errorf("failed initializing commerce client with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("initialized commerce client")

	logger = logger.With().Str(log.KeyProcess, "init cart engine").Logger()
	logger.Info().Msg("initializing cart engine")
	pricing, err := cart.PricingFromConfig(cfg.Pricing)
	if err != nil {
		err = fmt.Errorf("failed parsing pricing config with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	engine := cart.NewEngine(client, pricing, *zerolog.Ctx(c))
	logger.Info().Msg("initialized cart engine")

	logger = logger.With().Str(log.KeyProcess, "init wishlist").Logger()
	logger.Info().Msg("initializing wishlist")
	wishlistStore, err := wishlist.New(store, *zerolog.Ctx(c))
	if err != nil {
		err = fmt.Errorf("failed initializing wishlist with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("initialized wishlist")

	return &app{
		cfg:           cfg,
		store:         store,
		resolver:      resolver,
		client:        client,
		engine:        engine,
		wishlist:      wishlistStore,
		otelShutdowns: otelShutdowns,
	}, nil
}

func (a *app) close(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main appClose").
		Logger()

	if redisStore, ok := a.store.(*storage.RedisStore); ok {
		logger.Info().Str(log.KeyProcess, "shutting down storage").Msg("shutting down storage")
		if err := redisStore.Close(); err != nil {
			err = fmt.Errorf("failed shutting down storage with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
	}

	if len(a.otelShutdowns) > 0 {
		logger.Info().Str(log.KeyProcess, "shutting down otel").Msg("shutting down otel")
		if err := otel.ShutdownOtel(c, a.otelShutdowns); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
	}
}

func printJson(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func printCartState(a *app) error {
	state := a.engine.State()
	quote := a.engine.Quote()
	return printJson(map[string]any{
		"status":       state.Status.String(),
		"errorMessage": state.ErrorMessage,
		"cartOpen":     state.CartOpen,
		"cart":         state.Cart,
		"quote": map[string]string{
			"subtotal":    quote.Subtotal.StringFixed(2),
			"shippingFee": quote.ShippingFee.StringFixed(2),
			"totalAmount": quote.TotalAmount.StringFixed(2),
		},
	})
}
