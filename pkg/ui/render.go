package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/minhyannv/mcchat/pkg/store"
)

// PreviewRunes is how much of the first message a menu line shows.
const PreviewRunes = 20

// TimestampLayout formats conversation creation times.
const TimestampLayout = "2006-01-02 15:04:05"

// Renderer formats assistant answers.
type Renderer struct {
	md *glamour.TermRenderer
}

// NewRenderer returns a renderer. With markdown set, answers go through
// glamour; if glamour cannot be initialised the renderer stays plain.
func NewRenderer(markdown bool) *Renderer {
	r := &Renderer{}
	if !markdown {
		return r
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		r.md = md
	}
	return r
}

// Markdown reports whether answers are rendered as markdown.
func (r *Renderer) Markdown() bool { return r != nil && r.md != nil }

// Answer renders an assistant answer for display.
func (r *Renderer) Answer(text string) string {
	if r.Markdown() {
		if out, err := r.md.Render(text); err == nil {
			return "AI:\n" + strings.TrimRight(out, "\n")
		}
	}
	return AnswerStyle.Render("AI: " + text)
}

// Preview returns the first n runes of text.
func Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// FormatTimestamp renders epoch milliseconds in local time.
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Local().Format(TimestampLayout)
}

// ConversationLine is one menu entry: "[id] time - preview...".
func ConversationLine(conv *store.Conversation) string {
	return fmt.Sprintf("[%d] %s - %s...", conv.ID, FormatTimestamp(conv.Timestamp), Preview(conv.FirstContent(), PreviewRunes))
}

// HistoryText lists every message as "role: content", one per line.
func HistoryText(conv *store.Conversation) string {
	var sb strings.Builder
	for _, msg := range conv.History {
		sb.WriteString("\n")
		sb.WriteString(string(msg.Role))
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
	}
	return sb.String()
}
