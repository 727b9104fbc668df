package constants

import "time"

var ExtractionThresholds = struct {
	SelectorMinRunes int
	MetaMinRunes     int
	MaxParagraphs    int
}{
	SelectorMinRunes: 30, // below this a selector hit is navigation/boilerplate
	MetaMinRunes:     20,
	MaxParagraphs:    3,
}

var ReadingLimits = struct {
	MaxRunes      int
	TruncateRunes int
}{
	MaxRunes:      800,
	TruncateRunes: 780,
}

var ScraperConfig = struct {
	Timeout   time.Duration
	UserAgent string
}{
	Timeout:   15 * time.Second,
	UserAgent: "Mozilla/5.0 (compatible; AstroBot/1.0)",
}

var LineAPIConfig = struct {
	BaseURL string
	Timeout time.Duration
}{
	BaseURL: "https://api.line.me",
	Timeout: 10 * time.Second,
}

var BatchConfig = struct {
	MaxConcurrency int
}{
	MaxConcurrency: 8,
}

var ServerConfig = struct {
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}{
	ReadHeaderTimeout: 5 * time.Second,
	ShutdownTimeout:   10 * time.Second,
}
