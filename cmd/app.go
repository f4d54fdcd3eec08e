package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/tea-network/sbtmarket/catalog"
	"github.com/tea-network/sbtmarket/config"
	"github.com/tea-network/sbtmarket/contract"
	"github.com/tea-network/sbtmarket/log"
	"github.com/tea-network/sbtmarket/market"
	"github.com/tea-network/sbtmarket/templates"
	"github.com/tea-network/sbtmarket/util"
	"github.com/tea-network/sbtmarket/util/querier"
)

// app is the component graph shared by the server and the one-shot commands.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	catalog   *catalog.Reconciler
	templates *templates.Service
	market    *market.Market
}

func newApp(ctx context.Context, logger func(*config.Config) *slog.Logger) (*app, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}
	l := logger(cfg)

	util.InitLimiter(cfg.GetMaxConcurrentRequests())

	q := querier.NewQuerier(cfg)
	cat := catalog.New(cfg.GetCatalogConfig(), q, q, l)
	tmpl := templates.New(cfg.GetTemplateConfig(), q, cfg.GetQueryTimeout(), l)

	tx, err := contract.Dial(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// a typed nil *Transactor would read as a connected wallet
	var writer market.Writer
	if tx != nil {
		writer = tx
	} else {
		l.Info("no signer key configured, wallet session is disconnected")
	}

	mkt := market.New(writer, cat, tmpl, market.Options{
		Admin:             cfg.GetChainConfig().Admin(),
		RejectOwnedClaims: cfg.GetCatalogConfig().ResolveTokenTypes,
	}, l)

	return &app{
		cfg:       cfg,
		logger:    l,
		catalog:   cat,
		templates: tmpl,
		market:    mkt,
	}, nil
}

// newCLIApp builds the graph for commands that print a result and exit.
func newCLIApp(ctx context.Context) (*app, error) {
	return newApp(ctx, func(cfg *config.Config) *slog.Logger {
		return log.NewCLILogger(cfg.GetLogLevel())
	})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
