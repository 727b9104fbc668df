package app

import (
	"fmt"

	"github.com/kapu/astro-line-bot-go/internal/adapter"
	"github.com/kapu/astro-line-bot-go/internal/bot"
	"github.com/kapu/astro-line-bot-go/internal/config"
	"github.com/kapu/astro-line-bot-go/internal/domain"
	"github.com/kapu/astro-line-bot-go/internal/line"
	"github.com/kapu/astro-line-bot-go/internal/service"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing the Bot.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	botDeps *bot.Dependencies
}

// NewBot instantiates a bot using the pre-built dependency graph.
func (c *Container) NewBot() (*bot.Bot, error) {
	if c == nil || c.botDeps == nil {
		return nil, fmt.Errorf("bot dependencies not initialized")
	}
	return bot.NewBot(c.botDeps)
}

// Build assembles the service graph. The sign table and URL templates are
// constructed once here and shared read-only by every request.
func Build(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	lineClient := line.NewClient(cfg.Line.APIBaseURL, cfg.Line.ChannelAccessToken, logger)
	formatter := adapter.NewResponseFormatter()

	matcher := service.NewSignMatcher(domain.Signs, logger)
	scraper := service.NewScraperService(logger)
	horoscope := service.NewHoroscopeService(scraper, cfg.Source.UTCOffsetHours, logger)

	deps := &bot.Dependencies{
		Config:    cfg,
		Logger:    logger,
		LineCli:   lineClient,
		Matcher:   matcher,
		Horoscope: horoscope,
		Formatter: formatter,
	}

	return &Container{
		Config:  cfg,
		Logger:  logger,
		botDeps: deps,
	}, nil
}
