package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"coinsim/coingecko"
	"coinsim/config"
	"coinsim/market"
	"coinsim/sim"
	"coinsim/store"
)

// app wires the feed, store, bridge, and engine together for one command
// invocation.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	store  store.AccountStore
	bridge *store.Bridge
	snaps  *market.SnapshotStore
	engine *sim.Engine
	feed   *coingecko.Client
}

func newApp() (*app, error) {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadFromFile(cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	log, err := buildLogger()
	if err != nil {
		return nil, err
	}

	var st store.AccountStore
	switch cfg.Store.Type {
	case "firebase":
		fb := store.NewFirebase(cfg.Store.BaseURL)
		fb.Auth = cfg.Store.Auth
		st = fb
	default:
		st, err = store.NewSQLite(cfg.Store.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
	}

	bridge := store.NewBridge(st, log)
	bridge.SetAlertHook(func(err error) {
		fmt.Printf("warning: account sync failed: %v\n", err)
	})

	snaps := market.NewSnapshotStore()
	engine := sim.NewEngine(snaps, bridge, log)
	engine.SetTradeListener(printListener{})

	return &app{
		cfg:    cfg,
		log:    log,
		store:  st,
		bridge: bridge,
		snaps:  snaps,
		engine: engine,
		feed: &coingecko.Client{
			VsCurrency: cfg.Feed.Currency,
			PerPage:    cfg.Feed.PerPage,
		},
	}, nil
}

// close drains pending syncs before releasing the store.
func (a *app) close() {
	a.bridge.Wait()
	a.store.Close()
	a.log.Sync()
}

// refresh performs a one-shot feed poll so trades see current prices.
func (a *app) refresh(ctx context.Context) error {
	assets, err := a.feed.Markets(ctx)
	if err != nil {
		return fmt.Errorf("fetch markets: %w", err)
	}
	a.snaps.Replace(market.NewSnapshot(time.Now(), assets))
	return nil
}

// login loads the account record and hydrates the engine.
func (a *app) login(ctx context.Context, accountID string) error {
	rec, err := a.store.Load(ctx, accountID)
	if err != nil {
		return fmt.Errorf("load account %q: %w", accountID, err)
	}
	a.engine.Login(sim.Session{AccountID: accountID, Name: rec.Name}, rec)
	return nil
}

func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// printListener mirrors the success notifications of the reference UI.
type printListener struct{}

func (printListener) OnTrade(r sim.TradeReceipt) {
	switch r.Side {
	case sim.SideBuy:
		fmt.Printf("You have purchased $%.2f of %s (%.6f units)\n", r.Amount, r.AssetName, r.Units)
	case sim.SideSell:
		fmt.Printf("You have sold $%.2f of %s (%.6f units)\n", r.Amount, r.AssetName, r.Units)
	}
}
