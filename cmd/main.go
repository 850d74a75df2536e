package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/mshevelin/event-lottery/cmd/app"
	"github.com/mshevelin/event-lottery/internal/adapters/config"
	"github.com/mshevelin/event-lottery/internal/domain/dto"
	"github.com/spf13/viper"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()
	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Demo feed: follow one recipient's live inbox until interrupted.
	recipient := viper.GetString("settings.feed-recipient")
	if recipient == "" {
		a.Logger.Info("no feed recipient configured, nothing to listen to")
		return
	}

	a.Logger.Infof("listening to notification feed of %s", recipient)
	err = a.Notify.Listen(ctx, recipient, func(n dto.Notification) {
		a.Logger.Infof("[%s] %s: %s", n.Type, n.Title, n.Message)
	})
	if err != nil && ctx.Err() == nil {
		a.Logger.Errorf("feed listener stopped: %v", err)
	}
}
