package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/memoflow/internal/llm"
	"github.com/abhisek/memoflow/internal/store"
	"github.com/abhisek/memoflow/internal/vocab"
)

// Cache stores generated insights by word ID. store.InsightRepo implements it.
type Cache interface {
	GetInsight(ctx context.Context, wordID string) (*store.CachedInsight, error)
	PutInsight(ctx context.Context, in store.CachedInsight) error
}

// Service answers insight requests from the cache or the LLM.
type Service struct {
	provider llm.Provider
	cache    Cache
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	pending *Insight
	ready   bool
}

// NewService creates an insight service. A nil provider turns generation off
// and a nil cache disables caching.
func NewService(provider llm.Provider, cache Cache, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		cache:    cache,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// Explain returns the insight for w. It never fails: when nothing can be
// generated the result carries one of the fixed notices.
func (s *Service) Explain(ctx context.Context, w vocab.Word) *Insight {
	if in := s.lookup(ctx, w); in != nil {
		return in
	}
	if s.provider == nil {
		return &Insight{WordID: w.ID, Word: w.Text, Notice: NoticeNotConfigured}
	}

	in, err := s.generate(ctx, w)
	if err != nil {
		s.logger.Warn("word insight failed", "word", w.ID, "model", s.provider.Model(), "error", err)
		return &Insight{WordID: w.ID, Word: w.Text, Notice: NoticeUnavailable}
	}
	s.store(ctx, in)
	return in
}

// Request starts Explain in the background. Only the latest result is kept;
// collect it with Consume.
func (s *Service) Request(ctx context.Context, w vocab.Word) {
	go func() {
		in := s.Explain(ctx, w)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending = in
		s.ready = true
	}()
}

// Consume returns the insight produced by Request once it is ready and
// clears the slot.
func (s *Service) Consume() (*Insight, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	in := s.pending
	s.pending = nil
	s.ready = false
	return in, in != nil
}

type insightOutput struct {
	Mnemonic     string    `json:"mnemonic"`
	Examples     []Example `json:"examples"`
	Collocations []string  `json:"collocations"`
	Nuance       string    `json:"nuance"`
}

func (s *Service) generate(ctx context.Context, w vocab.Word) (*Insight, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeInsight)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	c, err := s.provider.Complete(ctx, llm.Prompt{
		Instructions: systemPrompt,
		Input:        describe(w),
		Schema:       Schema,
		MaxTokens:    s.cfg.MaxTokens,
		Temperature:  s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("insight generation: %w", err)
	}
	in, err := decode(w, c.JSON)
	if err != nil {
		return nil, err
	}
	in.Model = c.Model
	if in.Model == "" {
		in.Model = s.provider.Model()
	}
	in.CreatedAt = s.now()
	return in, nil
}

// lookup returns a cached insight, or nil on a miss. Entries that no longer
// match Schema are treated as misses.
func (s *Service) lookup(ctx context.Context, w vocab.Word) *Insight {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.GetInsight(ctx, w.ID)
	if err != nil {
		s.logger.Warn("read insight cache", "word", w.ID, "error", err)
		return nil
	}
	if cached == nil {
		return nil
	}
	payload := json.RawMessage(cached.Payload)
	if err := Schema.Validate(payload); err != nil {
		s.logger.Debug("discarding stale insight", "word", w.ID, "error", err)
		return nil
	}
	in, err := decode(w, payload)
	if err != nil {
		return nil
	}
	in.Model = cached.Model
	in.CreatedAt = cached.CreatedAt
	in.Cached = true
	return in
}

func (s *Service) store(ctx context.Context, in *Insight) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(insightOutput{
		Mnemonic:     in.Mnemonic,
		Examples:     in.Examples,
		Collocations: in.Collocations,
		Nuance:       in.Nuance,
	})
	if err != nil {
		return
	}
	err = s.cache.PutInsight(context.WithoutCancel(ctx), store.CachedInsight{
		WordID:    in.WordID,
		Model:     in.Model,
		Payload:   string(payload),
		CreatedAt: in.CreatedAt,
	})
	if err != nil {
		s.logger.Warn("write insight cache", "word", in.WordID, "error", err)
	}
}

func decode(w vocab.Word, raw json.RawMessage) (*Insight, error) {
	var out insightOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse insight response: %w", err)
	}
	return &Insight{
		WordID:       w.ID,
		Word:         w.Text,
		Mnemonic:     out.Mnemonic,
		Examples:     out.Examples,
		Collocations: out.Collocations,
		Nuance:       out.Nuance,
	}, nil
}
