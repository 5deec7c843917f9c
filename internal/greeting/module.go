package greeting

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/mkazanov/wishbot/internal/config"
)

type Params struct {
	fx.In

	Config    *config.Config
	Generator Generator
	Logger    zerolog.Logger
}

type Result struct {
	fx.Out

	Store   *Store
	Machine *Machine
}

// New builds the session store and state machine and hooks the idle-session
// janitor into the application lifecycle.
func New(lc fx.Lifecycle, p Params) (Result, error) {
	store := NewStore()
	machine := NewMachine(
		store,
		p.Generator,
		Prompts{
			System:  p.Config.Prompts.System,
			GoodDay: p.Config.Prompts.GoodDay,
		},
		p.Config.GenerationTimeout,
		p.Logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(
		fx.Hook{
			OnStart: func(context.Context) error {
				go sweep(ctx, store, p.Config.SessionTTL, p.Config.SessionSweepInterval, p.Logger)
				return nil
			},
			OnStop: func(context.Context) error {
				cancel()
				return nil
			},
		},
	)

	return Result{
		Store:   store,
		Machine: machine,
	}, nil
}

// sweep periodically evicts sessions idle past their TTL.
func sweep(ctx context.Context, store *Store, ttl, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Evict(ttl); n > 0 {
				log.Info().
					Int("evicted", n).
					Int("active", store.Len()).
					Msg("idle sessions evicted")
			}
		}
	}
}

func Module() fx.Option {
	return fx.Module(
		"greeting",
		fx.Provide(
			New,
		),
	)
}
