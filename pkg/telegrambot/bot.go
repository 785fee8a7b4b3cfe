package telegrambot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"shop-tg-bot/internal/config"
	"shop-tg-bot/internal/engine"
	"shop-tg-bot/internal/geo"
	"shop-tg-bot/internal/services"
)

// Bot represents the shop Telegram bot. It translates updates into engine
// events and renders the engine's views back into messages. Events for
// one user are serialized behind a per-user mutex, since a handler runs
// several backend calls and a concurrent second event would read stale
// cart or state data.
type Bot struct {
	bot          *telebot.Bot
	engine       *engine.Engine
	stateService *services.UserStateService
	qrService    *services.QRService
	logger       *logrus.Logger

	userLocks sync.Map // user ID -> *sync.Mutex
	rendered  sync.Map // user ID -> struct{}, set while a render happened for the in-flight update
}

// NewBot creates the Telegram bot and wires the conversation engine to it.
func NewBot(
	cfg *config.Config,
	catalog engine.Catalog,
	geocoder engine.Geocoder,
	stateService *services.UserStateService,
	qrService *services.QRService,
	logger *logrus.Logger,
) (*Bot, error) {
	settings := telebot.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			logger.Errorf("Telegram bot error: %v", err)
		},
	}

	b, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	bot := &Bot{
		bot:          b,
		stateService: stateService,
		qrService:    qrService,
		logger:       logger,
	}

	// The bot is its own render adapter, so the engine stays free of
	// transport types.
	bot.engine = engine.New(catalog, geocoder, stateService, bot, cfg.Elasticpath.ShopsFlow, logger)

	bot.setupMiddleware()

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting Telegram bot")

	go func() {
		<-ctx.Done()
		b.logger.Info("Stopping Telegram bot")
		b.bot.Stop()
	}()

	b.bot.Start()
	return nil
}

// setupMiddleware sets up the bot middleware and update routing
func (b *Bot) setupMiddleware() {
	b.bot.Use(func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			b.logger.Infof("Received update from %d: %s", c.Sender().ID, c.Text())
			return next(c)
		}
	})

	b.bot.Handle("/start", b.handleUpdate)
	b.bot.Handle(telebot.OnText, b.handleUpdate)
	b.bot.Handle(telebot.OnLocation, b.handleUpdate)
	b.bot.Handle(telebot.OnCallback, b.handleUpdate)
}

// handleUpdate handles an update from Telegram
func (b *Bot) handleUpdate(c telebot.Context) error {
	userID := c.Sender().ID

	mu := b.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	b.rendered.Delete(userID)

	if err := b.engine.Handle(context.Background(), userID, translate(c)); err != nil {
		b.logger.Errorf("Failed to handle update for user %d: %v", userID, err)
		return c.Send("Something went wrong. Please try again later.")
	}

	if c.Callback() != nil {
		if err := c.Respond(&telebot.CallbackResponse{}); err != nil {
			b.logger.Warnf("Failed to answer callback for user %d: %v", userID, err)
		}
		// A fresh message replaced this one, drop the stale keyboard.
		if _, ok := b.rendered.Load(userID); ok {
			if err := c.Delete(); err != nil {
				b.logger.Warnf("Failed to delete message for user %d: %v", userID, err)
			}
		}
	}

	return nil
}

// lockFor returns the serialization mutex for a user.
func (b *Bot) lockFor(userID int64) *sync.Mutex {
	mu, _ := b.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// translate maps a Telegram update to an engine event.
func translate(c telebot.Context) engine.Event {
	if cb := c.Callback(); cb != nil {
		return engine.Event{
			Kind:  engine.EventCallback,
			Token: strings.TrimPrefix(strings.TrimSpace(cb.Data), "\f"),
		}
	}

	if msg := c.Message(); msg != nil && msg.Location != nil {
		return engine.Event{
			Kind: engine.EventLocation,
			Location: geo.Point{
				Longitude: float64(msg.Location.Lng),
				Latitude:  float64(msg.Location.Lat),
			},
		}
	}

	if strings.HasPrefix(c.Text(), "/start") {
		return engine.Event{Kind: engine.EventStart}
	}

	return engine.Event{Kind: engine.EventText, Text: c.Text()}
}
