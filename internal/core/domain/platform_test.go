package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		input    string
		expected Platform
	}{
		{"telegram", PlatformTelegram},
		{"tg", PlatformTelegram},
		{"WhatsApp", PlatformWhatsApp},
		{"wa", PlatformWhatsApp},
		{"instagram", PlatformInstagram},
		{"ig", PlatformInstagram},
		{" discord ", PlatformDiscord},
		{"dc", PlatformDiscord},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePlatform(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestParsePlatform_Unknown(t *testing.T) {
	_, err := ParsePlatform("invalid_source")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestPlatform_DisplayNameAndAlias(t *testing.T) {
	assert.Equal(t, "Telegram", PlatformTelegram.DisplayName())
	assert.Equal(t, "WhatsApp", PlatformWhatsApp.DisplayName())
	assert.Equal(t, "Instagram", PlatformInstagram.DisplayName())
	assert.Equal(t, "Discord", PlatformDiscord.DisplayName())

	assert.Equal(t, "tg", PlatformTelegram.Alias())
	assert.Equal(t, "dc", PlatformDiscord.Alias())
}

func TestPlatforms(t *testing.T) {
	assert.Len(t, Platforms(), 4)
}

func TestParseOutputFormat(t *testing.T) {
	for _, f := range OutputFormats() {
		got, err := ParseOutputFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseOutputFormat("JSONL")
	require.NoError(t, err)
	assert.Equal(t, FormatJSONL, got)

	_, err = ParseOutputFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestOutputFormat_Names(t *testing.T) {
	assert.Equal(t, ".csv", FormatCSV.Extension())
	assert.Equal(t, ".jsonl", FormatJSONL.Extension())
	assert.Equal(t, "JSON", FormatJSON.DisplayName())
}
