package adapter

import (
	"fmt"
	"strings"

	"github.com/kapu/astro-line-bot-go/internal/domain"
)

// ResponseFormatter renders readings into chat messages. The line structure of
// the success message is a public contract; consumers parse it.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

// FormatReading renders a successful reading:
//
//	【<sign>座｜<YYYY/MM/DD>】
//	<normalized text>
//	—— 來源：<url>
func (f *ResponseFormatter) FormatReading(r *domain.Reading) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("【%s｜%s】\n", r.Sign.DisplayName(), r.Date))
	sb.WriteString(r.Text)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("—— 來源：%s", r.SourceURL))
	return sb.String()
}

// FormatFetchFailure is the fixed apology shown when any stage from fetch
// onward fails. It names the sign and nothing else; raw errors stay in logs.
func (f *ResponseFormatter) FormatFetchFailure(sign *domain.Sign) string {
	return fmt.Sprintf("抓取 %s 運勢失敗，稍後再試。", sign.Key)
}
