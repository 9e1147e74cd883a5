package llm

import "context"

// Purposes label request events so `memoflow llm stats` can group them.
const (
	PurposeInsight = "insight"
	PurposeUnknown = "unknown"
)

type purposeKey struct{}

func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if p, _ := ctx.Value(purposeKey{}).(string); p != "" {
		return p
	}
	return PurposeUnknown
}
