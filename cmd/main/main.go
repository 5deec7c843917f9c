package main

import (
	"github.com/ipfans/fxlogger"
	"go.uber.org/fx"

	"github.com/mkazanov/wishbot/internal/ai"
	"github.com/mkazanov/wishbot/internal/bot"
	"github.com/mkazanov/wishbot/internal/config"
	"github.com/mkazanov/wishbot/internal/greeting"
	"github.com/mkazanov/wishbot/internal/log"
)

func main() {

	fx.New(
		fx.WithLogger(fxlogger.WithZerolog(log.NewLogger())),
		config.Module(),
		log.Module(),
		ai.Module(),
		greeting.Module(),
		bot.Module(),
	).Run()
}
