package service

import (
	"context"

	"github.com/kapu/astro-line-bot-go/internal/domain"
	"github.com/kapu/astro-line-bot-go/internal/util"
	"go.uber.org/zap"
)

// HoroscopeService runs the per-request reading pipeline for a detected sign:
// resolve today's date in the source timezone, build the URL, fetch, extract,
// normalize. No state is shared between requests and nothing is cached.
type HoroscopeService struct {
	scraper        *ScraperService
	utcOffsetHours int
	logger         *zap.Logger
}

func NewHoroscopeService(scraper *ScraperService, utcOffsetHours int, logger *zap.Logger) *HoroscopeService {
	return &HoroscopeService{
		scraper:        scraper,
		utcOffsetHours: utcOffsetHours,
		logger:         logger,
	}
}

// DailyReading fetches today's reading for sign. Errors carry operator detail;
// callers translate them into the fixed user-facing failure message.
func (h *HoroscopeService) DailyReading(ctx context.Context, sign *domain.Sign) (*domain.Reading, error) {
	date := util.TodayAt(h.utcOffsetHours)
	url := sign.BuildURL(date)

	text, err := h.scraper.FetchReading(ctx, url)
	if err != nil {
		h.logger.Error("Failed to fetch reading",
			zap.String("sign", sign.Key),
			zap.String("url", url),
			zap.Error(err))
		return nil, err
	}

	return &domain.Reading{
		Sign:      sign,
		Date:      util.TodayDisplayAt(h.utcOffsetHours),
		Text:      NormalizeReading(text),
		SourceURL: url,
	}, nil
}
