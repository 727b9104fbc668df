package domain

import "strings"

// DatePlaceholder is the token substituted by the resolved civil date when
// building a per-sign source URL.
const DatePlaceholder = "YYYY-MM-DD"

// Sign is one of the twelve zodiac signs as known to the content source.
// Key is the canonical identifier; Aliases includes the key itself plus
// variant spellings that should resolve to the same sign.
type Sign struct {
	Key         string
	Aliases     []string
	Index       int
	URLTemplate string
}

// BuildURL substitutes date into the sign's source URL template.
func (s *Sign) BuildURL(date string) string {
	return strings.Replace(s.URLTemplate, DatePlaceholder, date, 1)
}

// DisplayName returns the user-facing sign name (e.g. 水瓶座).
func (s *Sign) DisplayName() string {
	return s.Key + "座"
}

// Signs is the fixed sign table. Order matters: alias matching scans entries
// in this order and the first hit wins, and Index values follow the source
// site's iAstro numbering. Do not reorder.
var Signs = []*Sign{
	{Key: "白羊", Aliases: []string{"白羊", "牡羊"}, Index: 0, URLTemplate: "https://astro.click108.com.tw/daily_0.php?iAcDay=YYYY-MM-DD&iAstro=0"},
	{Key: "金牛", Aliases: []string{"金牛"}, Index: 1, URLTemplate: "https://astro.click108.com.tw/daily_1.php?iAcDay=YYYY-MM-DD&iAstro=1"},
	{Key: "雙子", Aliases: []string{"雙子"}, Index: 2, URLTemplate: "https://astro.click108.com.tw/daily_2.php?iAcDay=YYYY-MM-DD&iAstro=2"},
	{Key: "巨蟹", Aliases: []string{"巨蟹"}, Index: 3, URLTemplate: "https://astro.click108.com.tw/daily_3.php?iAcDay=YYYY-MM-DD&iAstro=3"},
	{Key: "獅子", Aliases: []string{"獅子"}, Index: 4, URLTemplate: "https://astro.click108.com.tw/daily_4.php?iAcDay=YYYY-MM-DD&iAstro=4"},
	{Key: "處女", Aliases: []string{"處女"}, Index: 5, URLTemplate: "https://astro.click108.com.tw/daily_5.php?iAcDay=YYYY-MM-DD&iAstro=5"},
	{Key: "天秤", Aliases: []string{"天秤"}, Index: 6, URLTemplate: "https://astro.click108.com.tw/daily_6.php?iAcDay=YYYY-MM-DD&iAstro=6"},
	{Key: "天蠍", Aliases: []string{"天蠍"}, Index: 7, URLTemplate: "https://astro.click108.com.tw/daily_7.php?iAcDay=YYYY-MM-DD&iAstro=7"},
	{Key: "射手", Aliases: []string{"射手"}, Index: 8, URLTemplate: "https://astro.click108.com.tw/daily_8.php?iAcDay=YYYY-MM-DD&iAstro=8"},
	{Key: "魔羯", Aliases: []string{"魔羯", "摩羯"}, Index: 9, URLTemplate: "https://astro.click108.com.tw/daily_9.php?iAcDay=YYYY-MM-DD&iAstro=9"},
	{Key: "水瓶", Aliases: []string{"水瓶"}, Index: 10, URLTemplate: "https://astro.click108.com.tw/daily_10.php?iAcDay=YYYY-MM-DD&iAstro=10"},
	{Key: "雙魚", Aliases: []string{"雙魚"}, Index: 11, URLTemplate: "https://astro.click108.com.tw/daily_11.php?iAcDay=YYYY-MM-DD&iAstro=11"},
}
