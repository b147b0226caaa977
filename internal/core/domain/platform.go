package domain

import (
	"fmt"
	"strings"
)

// Platform identifies the chat application an export came from.
type Platform string

const (
	// PlatformTelegram is a Telegram Desktop JSON export.
	PlatformTelegram Platform = "telegram"
	// PlatformWhatsApp is a WhatsApp "Export chat" text file.
	PlatformWhatsApp Platform = "whatsapp"
	// PlatformInstagram is an Instagram data download message file.
	PlatformInstagram Platform = "instagram"
	// PlatformDiscord is a DiscordChatExporter JSON, TXT or CSV export.
	PlatformDiscord Platform = "discord"
)

var platformAliases = map[string]Platform{
	"telegram":  PlatformTelegram,
	"tg":        PlatformTelegram,
	"whatsapp":  PlatformWhatsApp,
	"wa":        PlatformWhatsApp,
	"instagram": PlatformInstagram,
	"ig":        PlatformInstagram,
	"discord":   PlatformDiscord,
	"dc":        PlatformDiscord,
}

// Platforms returns all supported platforms in display order.
func Platforms() []Platform {
	return []Platform{PlatformTelegram, PlatformWhatsApp, PlatformInstagram, PlatformDiscord}
}

// ParsePlatform resolves a platform name or its short alias (tg, wa, ig, dc).
func ParsePlatform(name string) (Platform, error) {
	p, ok := platformAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: platform %q", ErrUnsupportedType, name)
	}
	return p, nil
}

// DisplayName returns the human-readable platform name.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformTelegram:
		return "Telegram"
	case PlatformWhatsApp:
		return "WhatsApp"
	case PlatformInstagram:
		return "Instagram"
	case PlatformDiscord:
		return "Discord"
	default:
		return string(p)
	}
}

// Alias returns the short alias accepted on the command line.
func (p Platform) Alias() string {
	for alias, platform := range platformAliases {
		if platform == p && len(alias) == 2 {
			return alias
		}
	}
	return string(p)
}
