package ai

import (
	"go.uber.org/fx"

	"github.com/mkazanov/wishbot/internal/config"
	"github.com/mkazanov/wishbot/internal/greeting"
)

// Params for creating the completion service
type Params struct {
	fx.In

	Config *config.Config
}

// Result of creating the completion service
type Result struct {
	fx.Out

	Generator greeting.Generator
}

// New creates the completion service based on configuration
func New(p Params) (Result, error) {
	service, err := NewService(p.Config.APIKey, p.Config.BaseURL, p.Config.Model)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Generator: service,
	}, nil
}

// Module provides the completion service
func Module() fx.Option {
	return fx.Module(
		"ai",
		fx.Provide(
			New,
		),
	)
}
