package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memoflow/internal/llm"
	"github.com/abhisek/memoflow/internal/store"
	"github.com/abhisek/memoflow/internal/vocab"
)

const validPayload = `{
	"mnemonic": "a + band + on: the band left him on the island.",
	"examples": [
		{"en": "They had to abandon the car in the snow.", "zh": "他们不得不把车丢弃在雪地里。"},
		{"en": "Never abandon your dreams.", "zh": "永远不要放弃你的梦想。"}
	],
	"collocations": ["abandon hope", "abandon a plan"],
	"nuance": "Stronger than leave; it suggests giving up completely."
}`

func abandon() vocab.Word {
	return vocab.Word{ID: "w-abandon", Text: "abandon", Meaning: "放弃；抛弃", PartOfSpeech: "v."}
}

type memCache struct {
	entries map[string]store.CachedInsight
	getErr  error
	putErr  error
	puts    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]store.CachedInsight{}}
}

func (c *memCache) GetInsight(_ context.Context, id string) (*store.CachedInsight, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	in, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	return &in, nil
}

func (c *memCache) PutInsight(_ context.Context, in store.CachedInsight) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[in.WordID] = in
	return nil
}

func quietLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestExplain_GeneratesAndCaches(t *testing.T) {
	mock := llm.NewFake(llm.Reply{JSON: json.RawMessage(validPayload)})
	cache := newMemCache()
	logger, _ := quietLogger()
	svc := NewService(mock, cache, DefaultConfig(), logger)

	in := svc.Explain(t.Context(), abandon())
	require.True(t, in.Available(), "notice: %s", in.Notice)
	assert.False(t, in.Cached)
	assert.Equal(t, "abandon", in.Word)
	assert.Len(t, in.Examples, 2)
	assert.Equal(t, []string{"abandon hope", "abandon a plan"}, in.Collocations)
	assert.Equal(t, "mock", in.Model)

	require.Equal(t, 1, mock.Calls())
	prompt := mock.Prompts()[0]
	assert.Same(t, Schema, prompt.Schema)
	assert.Equal(t, systemPrompt, prompt.Instructions)
	assert.Contains(t, prompt.Input, "Word: abandon")
	assert.Contains(t, prompt.Input, "Part of speech: v.")

	require.Contains(t, cache.entries, "w-abandon")
	assert.NoError(t, Schema.Validate(json.RawMessage(cache.entries["w-abandon"].Payload)))

	again := svc.Explain(t.Context(), abandon())
	require.True(t, again.Available())
	assert.True(t, again.Cached)
	assert.Equal(t, in.Mnemonic, again.Mnemonic)
	assert.Equal(t, 1, mock.Calls(), "cache hit must not call the provider")
}

func TestExplain_NoProvider(t *testing.T) {
	svc := NewService(nil, newMemCache(), DefaultConfig(), nil)
	assert.False(t, svc.Enabled())

	in := svc.Explain(t.Context(), abandon())
	assert.False(t, in.Available())
	assert.Equal(t, NoticeNotConfigured, in.Notice)
}

func TestExplain_NoProviderStillServesCache(t *testing.T) {
	cache := newMemCache()
	cache.entries["w-abandon"] = store.CachedInsight{WordID: "w-abandon", Model: "gemini-2.5-flash", Payload: validPayload}
	svc := NewService(nil, cache, DefaultConfig(), nil)

	in := svc.Explain(t.Context(), abandon())
	require.True(t, in.Available())
	assert.True(t, in.Cached)
	assert.Equal(t, "gemini-2.5-flash", in.Model)
}

func TestExplain_ProviderFailure(t *testing.T) {
	tests := []struct {
		name string
		resp llm.Reply
	}{
		{"unavailable", llm.Reply{Err: &llm.Error{Kind: llm.Unavailable, Err: errors.New("down")}}},
		{"unparseable", llm.Reply{JSON: json.RawMessage(`[1,2]`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewFake(tt.resp)
			cache := newMemCache()
			logger, logs := quietLogger()
			svc := NewService(mock, cache, DefaultConfig(), logger)

			in := svc.Explain(t.Context(), abandon())
			assert.Equal(t, NoticeUnavailable, in.Notice)
			assert.Contains(t, logs.String(), "word insight failed")
			assert.Zero(t, cache.puts)
		})
	}
}

func TestExplain_StaleCacheRegenerated(t *testing.T) {
	cache := newMemCache()
	cache.entries["w-abandon"] = store.CachedInsight{WordID: "w-abandon", Payload: `{"mnemonic":"old"}`}
	mock := llm.NewFake(llm.Reply{JSON: json.RawMessage(validPayload)})
	logger, _ := quietLogger()
	svc := NewService(mock, cache, DefaultConfig(), logger)

	in := svc.Explain(t.Context(), abandon())
	require.True(t, in.Available())
	assert.False(t, in.Cached)
	assert.Equal(t, 1, mock.Calls())
}

func TestExplain_CacheErrorsAreWarnings(t *testing.T) {
	cache := newMemCache()
	cache.getErr = errors.New("locked")
	cache.putErr = errors.New("read-only")
	mock := llm.NewFake(llm.Reply{JSON: json.RawMessage(validPayload)})
	logger, logs := quietLogger()
	svc := NewService(mock, cache, DefaultConfig(), logger)

	in := svc.Explain(t.Context(), abandon())
	require.True(t, in.Available())
	assert.Contains(t, logs.String(), "read insight cache")
	assert.Contains(t, logs.String(), "write insight cache")
}

func TestRequestConsume(t *testing.T) {
	mock := llm.NewFake(llm.Reply{JSON: json.RawMessage(validPayload)})
	svc := NewService(mock, nil, DefaultConfig(), nil)

	_, ok := svc.Consume()
	assert.False(t, ok)

	svc.Request(t.Context(), abandon())

	var in *Insight
	require.Eventually(t, func() bool {
		in, ok = svc.Consume()
		return ok
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "w-abandon", in.WordID)

	_, ok = svc.Consume()
	assert.False(t, ok, "slot is cleared after consumption")
}

func TestExplain_WithStore(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "memoflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	mock := llm.NewFake(llm.Reply{JSON: json.RawMessage(validPayload)})
	provider := llm.Recording(mock, llm.ProviderMock, s.EventRepo())
	svc := NewService(provider, s.InsightRepo(), DefaultConfig(), nil)

	first := svc.Explain(t.Context(), abandon())
	require.True(t, first.Available())
	second := svc.Explain(t.Context(), abandon())
	assert.True(t, second.Cached)

	events, err := s.EventRepo().QueryLLMEvents(t.Context(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, llm.PurposeInsight, events[0].Purpose)
	assert.True(t, events[0].Success)
}
