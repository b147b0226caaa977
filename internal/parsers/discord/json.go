package discord

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/chatpack/internal/core/domain"
)

// extractJSON maps one DiscordChatExporter message object.
// Only user messages and replies are kept; pins, joins and calls are skipped.
func extractJSON(raw json.RawMessage) (domain.Message, bool, error) {
	m := gjson.ParseBytes(raw)
	if !m.IsObject() {
		return domain.Message{}, false, fmt.Errorf("%w: message is not an object", domain.ErrInvalidRecord)
	}
	switch m.Get("type").String() {
	case "", "Default", "Reply":
	default:
		return domain.Message{}, false, nil
	}

	sender := m.Get("author.nickname").String()
	if sender == "" {
		sender = m.Get("author.name").String()
	}
	if sender == "" {
		return domain.Message{}, false, domain.ErrEmptySender
	}

	ts, err := parseTime(m.Get("timestamp").String())
	if err != nil {
		return domain.Message{}, false, err
	}

	var urls []string
	m.Get("attachments").ForEach(func(_, a gjson.Result) bool {
		if u := a.Get("url").String(); u != "" {
			urls = append(urls, u)
		}
		return true
	})

	msg := domain.NewMessage(sender, withAttachments(m.Get("content").String(), urls), ts)
	if id := m.Get("id").String(); id != "" {
		msg = msg.WithID(id)
	}
	if ref := m.Get("reference.messageId").String(); ref != "" {
		msg = msg.WithReplyTo(ref)
	}
	if edited := m.Get("timestampEdited").String(); edited != "" {
		t, err := parseTime(edited)
		if err != nil {
			return domain.Message{}, false, fmt.Errorf("timestampEdited: %w", err)
		}
		msg = msg.WithEditedAt(t)
	}
	return msg, true, nil
}

// withAttachments puts each attachment on its own line after the text.
func withAttachments(content string, urls []string) string {
	if len(urls) == 0 {
		return content
	}
	if content == "" {
		return strings.Join(urls, "\n")
	}
	return content + "\n" + strings.Join(urls, "\n")
}
