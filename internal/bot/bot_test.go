package bot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/kapu/astro-line-bot-go/internal/adapter"
	"github.com/kapu/astro-line-bot-go/internal/config"
	"github.com/kapu/astro-line-bot-go/internal/domain"
	"github.com/kapu/astro-line-bot-go/internal/line"
	"github.com/kapu/astro-line-bot-go/internal/service"
	"github.com/kapu/astro-line-bot-go/internal/util"
	"go.uber.org/zap"
)

const testSecret = "test-channel-secret"

const readingHTML = `<html><body><div class="TODAY_CONTENT">今天的整體運勢相當不錯，工作上會遇到貴人相助，感情方面也有新的進展，財運平穩。</div></body></html>`

type replyRecorder struct {
	mu      sync.Mutex
	replies []line.ReplyRequest
}

func (rr *replyRecorder) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req line.ReplyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode reply request: %v", err)
		}
		rr.mu.Lock()
		rr.replies = append(rr.replies, req)
		rr.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}
}

func (rr *replyRecorder) all() []line.ReplyRequest {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	out := make([]line.ReplyRequest, len(rr.replies))
	copy(out, rr.replies)
	return out
}

// newTestBot wires a bot against a fake source site and a fake LINE API. The
// source serves a good page for every sign except 獅子, which always 500s.
func newTestBot(t *testing.T) (*Bot, *replyRecorder) {
	t.Helper()

	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "daily_4") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(readingHTML))
	}))
	t.Cleanup(source.Close)

	recorder := &replyRecorder{}
	lineAPI := httptest.NewServer(recorder.handler(t))
	t.Cleanup(lineAPI.Close)

	signs := make([]*domain.Sign, len(domain.Signs))
	for i, s := range domain.Signs {
		signs[i] = &domain.Sign{
			Key:         s.Key,
			Aliases:     s.Aliases,
			Index:       s.Index,
			URLTemplate: fmt.Sprintf("%s/daily_%d.php?iAcDay=%s&iAstro=%d", source.URL, s.Index, domain.DatePlaceholder, s.Index),
		}
	}

	cfg := &config.Config{
		Line: config.LineConfig{
			ChannelSecret:      testSecret,
			ChannelAccessToken: "test-token",
			APIBaseURL:         lineAPI.URL,
		},
		Server: config.ServerConfig{Port: 3000},
		Source: config.SourceConfig{UTCOffsetHours: 8},
	}

	logger := zap.NewNop()
	scraper := service.NewScraperService(logger)
	deps := &Dependencies{
		Config:    cfg,
		Logger:    logger,
		LineCli:   line.NewClient(lineAPI.URL, cfg.Line.ChannelAccessToken, logger),
		Matcher:   service.NewSignMatcher(signs, logger),
		Horoscope: service.NewHoroscopeService(scraper, cfg.Source.UTCOffsetHours, logger),
		Formatter: adapter.NewResponseFormatter(),
	}

	b, err := NewBot(deps)
	if err != nil {
		t.Fatalf("failed to build bot: %v", err)
	}
	return b, recorder
}

func textEvent(text, replyToken string) *line.Event {
	return &line.Event{
		Type:       line.EventTypeMessage,
		ReplyToken: replyToken,
		Message:    &line.EventMessage{Type: line.MessageTypeText, Text: text},
	}
}

func postWebhook(t *testing.T, b *Bot, req line.WebhookRequest, secret string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("failed to marshal webhook request: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	r.Header.Set("X-Line-Signature", line.Sign(secret, body))
	w := httptest.NewRecorder()
	b.handleWebhook(w, r)
	return w
}

func TestWebhookRepliesWithReading(t *testing.T) {
	b, recorder := newTestBot(t)

	w := postWebhook(t, b, line.WebhookRequest{
		Events: []*line.Event{textEvent("今天水瓶運勢如何", "token-1")},
	}, testSecret)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	replies := recorder.all()
	if len(replies) != 1 {
		t.Fatalf("expected exactly one reply, got %d", len(replies))
	}
	if replies[0].ReplyToken != "token-1" {
		t.Fatalf("unexpected reply token: %q", replies[0].ReplyToken)
	}

	text := replies[0].Messages[0].Text
	lines := strings.Split(text, "\n")
	wantHeader := "【水瓶座｜" + util.TodayDisplayAt(8) + "】"
	if lines[0] != wantHeader {
		t.Fatalf("first line = %q, want %q", lines[0], wantHeader)
	}
	if !strings.HasPrefix(lines[len(lines)-1], "—— 來源：") {
		t.Fatalf("last line should carry the source attribution, got %q", lines[len(lines)-1])
	}
}

func TestWebhookIgnoresTextWithoutSign(t *testing.T) {
	b, recorder := newTestBot(t)

	w := postWebhook(t, b, line.WebhookRequest{
		Events: []*line.Event{textEvent("你好", "token-1")},
	}, testSecret)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if replies := recorder.all(); len(replies) != 0 {
		t.Fatalf("expected no replies, got %d", len(replies))
	}
}

func TestWebhookIgnoresNonTextEvents(t *testing.T) {
	b, recorder := newTestBot(t)

	w := postWebhook(t, b, line.WebhookRequest{
		Events: []*line.Event{
			{Type: "follow", ReplyToken: "token-1"},
			{Type: line.EventTypeMessage, ReplyToken: "token-2", Message: &line.EventMessage{Type: "sticker"}},
		},
	}, testSecret)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if replies := recorder.all(); len(replies) != 0 {
		t.Fatalf("expected no replies for non-text events, got %d", len(replies))
	}
}

func TestWebhookFetchFailureReply(t *testing.T) {
	b, recorder := newTestBot(t)

	// 獅子 is index 4; the fake source 500s for daily_4.
	postWebhook(t, b, line.WebhookRequest{
		Events: []*line.Event{textEvent("獅子今天運勢", "token-1")},
	}, testSecret)

	replies := recorder.all()
	if len(replies) != 1 {
		t.Fatalf("expected exactly one reply, got %d", len(replies))
	}
	if got := replies[0].Messages[0].Text; got != "抓取 獅子 運勢失敗，稍後再試。" {
		t.Fatalf("unexpected failure reply: %q", got)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	b, recorder := newTestBot(t)

	w := postWebhook(t, b, line.WebhookRequest{
		Events: []*line.Event{textEvent("水瓶", "token-1")},
	}, "wrong-secret")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad signature, got %d", w.Code)
	}
	if replies := recorder.all(); len(replies) != 0 {
		t.Fatalf("no events should be processed on bad signature, got %d replies", len(replies))
	}
}

func TestWebhookBatchIsolatesFailures(t *testing.T) {
	b, recorder := newTestBot(t)

	w := postWebhook(t, b, line.WebhookRequest{
		Events: []*line.Event{
			textEvent("獅子運勢", "token-lion"),
			textEvent("你好", "token-none"),
			textEvent("水瓶運勢", "token-aqua"),
		},
	}, testSecret)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var outcomes []EventOutcome
	if err := json.Unmarshal(w.Body.Bytes(), &outcomes); err != nil {
		t.Fatalf("failed to decode outcomes: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected one outcome per event in order, got %d", len(outcomes))
	}
	if !outcomes[0].Replied || !outcomes[2].Replied {
		t.Fatalf("both sign-bearing events should reply, got %+v", outcomes)
	}
	if outcomes[1].Replied || outcomes[1].Error != "" {
		t.Fatalf("alias-free event should be silently ignored, got %+v", outcomes[1])
	}

	replies := recorder.all()
	if len(replies) != 2 {
		t.Fatalf("expected two replies, got %d", len(replies))
	}

	byToken := make(map[string]string, len(replies))
	for _, r := range replies {
		byToken[r.ReplyToken] = r.Messages[0].Text
	}
	if got := byToken["token-lion"]; got != "抓取 獅子 運勢失敗，稍後再試。" {
		t.Fatalf("lion event should get the failure reply, got %q", got)
	}
	if !strings.HasPrefix(byToken["token-aqua"], "【水瓶座｜") {
		t.Fatalf("aquarius event should get a reading, got %q", byToken["token-aqua"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	b, _ := newTestBot(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	b.handleHealth(w, r)

	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Fatalf("expected 200 OK, got %d %q", w.Code, w.Body.String())
	}
}
