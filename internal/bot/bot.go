package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/kapu/astro-line-bot-go/internal/adapter"
	"github.com/kapu/astro-line-bot-go/internal/config"
	"github.com/kapu/astro-line-bot-go/internal/constants"
	"github.com/kapu/astro-line-bot-go/internal/domain"
	"github.com/kapu/astro-line-bot-go/internal/line"
	"github.com/kapu/astro-line-bot-go/internal/service"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Dependencies bundles everything a Bot needs; the container builds it.
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	LineCli   *line.Client
	Matcher   *service.SignMatcher
	Horoscope *service.HoroscopeService
	Formatter *adapter.ResponseFormatter
}

// EventOutcome records what happened to one webhook event. Outcomes keep the
// input order of the batch.
type EventOutcome struct {
	Replied bool   `json:"replied"`
	Error   string `json:"error,omitempty"`
}

// Bot hosts the webhook endpoint and drives the reading pipeline for each
// inbound event.
type Bot struct {
	deps   *Dependencies
	server *http.Server
}

func NewBot(deps *Dependencies) (*Bot, error) {
	if deps == nil || deps.Config == nil || deps.Logger == nil {
		return nil, fmt.Errorf("bot dependencies not initialized")
	}
	if deps.LineCli == nil || deps.Matcher == nil || deps.Horoscope == nil || deps.Formatter == nil {
		return nil, fmt.Errorf("bot dependencies incomplete")
	}

	b := &Bot{deps: deps}

	mux := http.NewServeMux()
	mux.HandleFunc("/", b.handleHealth)
	mux.HandleFunc("/webhook", b.handleWebhook)

	b.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: constants.ServerConfig.ReadHeaderTimeout,
	}

	return b, nil
}

// Start serves HTTP until the server is shut down.
func (b *Bot) Start(ctx context.Context) error {
	b.deps.Logger.Info("Webhook server listening", zap.String("addr", b.server.Addr))

	if err := b.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.deps.Logger.Info("Shutting down webhook server")
	return b.server.Shutdown(ctx)
}

func (b *Bot) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		b.deps.Logger.Error("Failed to read webhook body", zap.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Line-Signature")
	if !line.ValidateSignature(b.deps.Config.Line.ChannelSecret, signature, body) {
		b.deps.Logger.Warn("Webhook signature validation failed")
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	var req line.WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		b.deps.Logger.Error("Failed to parse webhook body", zap.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	outcomes := b.ProcessEvents(r.Context(), req.Events)

	replied := 0
	for _, outcome := range outcomes {
		if outcome.Replied {
			replied++
		}
	}
	b.deps.Logger.Info("Webhook batch processed",
		zap.Int("events", len(req.Events)),
		zap.Int("replied", replied))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(outcomes)
}

// ProcessEvents handles a webhook batch. Events run concurrently on a bounded
// pool; outcomes are written into an index-addressed slice so they keep input
// order. Each handler runs under a panic catcher so one bad event cannot take
// down its siblings.
func (b *Bot) ProcessEvents(ctx context.Context, events []*line.Event) []EventOutcome {
	outcomes := make([]EventOutcome, len(events))
	if len(events) == 0 {
		return outcomes
	}

	p := pool.New().WithMaxGoroutines(constants.BatchConfig.MaxConcurrency)
	outcomesMu := sync.Mutex{}

	for idx, event := range events {
		idx, event := idx, event
		p.Go(func() {
			var outcome EventOutcome
			recovered := panics.Try(func() {
				outcome = b.handleEvent(ctx, event)
			})
			if recovered != nil {
				b.deps.Logger.Error("Event handler panicked",
					zap.Int("event_index", idx),
					zap.Any("recovered", recovered.Value))
				outcome = EventOutcome{Error: "handler panic"}
			}

			outcomesMu.Lock()
			outcomes[idx] = outcome
			outcomesMu.Unlock()
		})
	}

	p.Wait()
	return outcomes
}

// handleEvent runs the full pipeline for one event: non-text events and text
// with no sign alias end it silently; a detected sign always produces exactly
// one reply, either the reading or the fixed failure message.
func (b *Bot) handleEvent(ctx context.Context, event *line.Event) EventOutcome {
	if !event.IsTextMessage() {
		return EventOutcome{}
	}

	text := strings.TrimSpace(event.Message.Text)
	sign := b.deps.Matcher.Detect(text)
	if sign == nil {
		return EventOutcome{}
	}

	reply := b.buildReply(ctx, sign)

	if err := b.deps.LineCli.ReplyMessage(ctx, event.ReplyToken, line.NewTextMessage(reply)); err != nil {
		return EventOutcome{Error: err.Error()}
	}

	return EventOutcome{Replied: true}
}

func (b *Bot) buildReply(ctx context.Context, sign *domain.Sign) string {
	reading, err := b.deps.Horoscope.DailyReading(ctx, sign)
	if err != nil {
		return b.deps.Formatter.FormatFetchFailure(sign)
	}
	return b.deps.Formatter.FormatReading(reading)
}
