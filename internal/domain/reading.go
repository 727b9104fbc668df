package domain

// Reading is one day's horoscope for a single sign. It lives for exactly one
// request; readings are never cached or persisted.
type Reading struct {
	Sign      *Sign
	Date      string // display form, e.g. 2026/08/30
	Text      string
	SourceURL string
}
