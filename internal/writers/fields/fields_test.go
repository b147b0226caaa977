package fields

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatpack/internal/core/domain"
)

var ts = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func TestActive_Order(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.OutputConfig
		want []string
	}{
		{"minimal", domain.NewOutputConfig(), []string{"sender", "content"}},
		{"all", domain.AllFields(), []string{"sender", "content", "timestamp", "id", "reply_to", "edited"}},
		{"ids and edits", domain.NewOutputConfig().WithIDs().WithEdited(), []string{"sender", "content", "id", "edited"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Names(Active(tt.cfg)))
		})
	}
}

func TestRow(t *testing.T) {
	m := domain.NewMessage("Alice", "Hi", ts).WithID("7")

	row := Row(Active(domain.AllFields()), m)

	assert.Equal(t, []string{"Alice", "Hi", "2024-01-15T10:00:00Z", "7", "", ""}, row)
}

func TestAppendObject(t *testing.T) {
	edited := ts.Add(time.Minute)
	m := domain.NewMessage("Alice", "a <b> & \"c\"\nd", ts).WithEditedAt(edited)

	got, err := AppendObject(nil, Active(domain.AllFields()), m)

	require.NoError(t, err)
	assert.Equal(t,
		`{"sender":"Alice","content":"a <b> & \"c\"\nd","timestamp":"2024-01-15T10:00:00Z","id":null,"reply_to":null,"edited":"2024-01-15T10:01:00Z"}`,
		string(got))
	assert.True(t, json.Valid(got))
}

func TestInvalidUTF8_SameInEveryFormat(t *testing.T) {
	fs := Active(domain.OutputConfig{})
	m := domain.NewMessage("Al\xffice", "caf\xc3", ts)

	row := Row(fs, m)
	assert.Equal(t, []string{"Al\uFFFDice", "caf\uFFFD"}, row)

	obj, err := AppendObject(nil, fs, m)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(obj, &got))
	assert.Equal(t, row[0], got[Sender])
	assert.Equal(t, row[1], got[Content])
}

func TestFormatTime_UTC(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)

	assert.Equal(t, "2024-01-15T10:00:00Z", FormatTime(time.Date(2024, 1, 15, 11, 0, 0, 0, berlin)))
}
