package line

const (
	EventTypeMessage = "message"
	MessageTypeText  = "text"
)

// WebhookRequest is the body LINE posts to the webhook endpoint: a batch of
// independent events.
type WebhookRequest struct {
	Destination string   `json:"destination,omitempty"`
	Events      []*Event `json:"events"`
}

type Event struct {
	Type       string        `json:"type"`
	ReplyToken string        `json:"replyToken,omitempty"`
	Timestamp  int64         `json:"timestamp,omitempty"`
	Source     *EventSource  `json:"source,omitempty"`
	Message    *EventMessage `json:"message,omitempty"`
}

type EventSource struct {
	Type    string `json:"type,omitempty"`
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}

type EventMessage struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// IsTextMessage reports whether the event carries user text that the bot can
// act on. Everything else is ignored without error.
func (e *Event) IsTextMessage() bool {
	return e != nil && e.Type == EventTypeMessage && e.Message != nil && e.Message.Type == MessageTypeText
}

type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func NewTextMessage(text string) TextMessage {
	return TextMessage{Type: MessageTypeText, Text: text}
}

type ReplyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []TextMessage `json:"messages"`
}
