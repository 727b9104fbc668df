package service

import (
	"strings"

	"github.com/kapu/astro-line-bot-go/internal/domain"
	"go.uber.org/zap"
)

// SignMatcher resolves free-form user text to a zodiac sign via substring
// containment over the configured alias table. The table is read-only after
// construction, so Detect is safe for concurrent use.
type SignMatcher struct {
	signs  []*domain.Sign
	logger *zap.Logger
}

func NewSignMatcher(signs []*domain.Sign, logger *zap.Logger) *SignMatcher {
	logger.Info("Sign matcher initialized", zap.Int("signs", len(signs)))
	return &SignMatcher{
		signs:  signs,
		logger: logger,
	}
}

// Detect returns the first sign whose alias appears in text, scanning entries
// in table order. Text mentioning several signs resolves to the earliest entry;
// this tie-break is part of the contract, not an accident of iteration.
func (m *SignMatcher) Detect(text string) *domain.Sign {
	for _, sign := range m.signs {
		for _, alias := range sign.Aliases {
			if strings.Contains(text, alias) {
				return sign
			}
		}
	}
	return nil
}
