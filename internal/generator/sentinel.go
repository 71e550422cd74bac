package generator

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/podcast-flow/internal/llm"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
)

// Sentinel is the text that stands in for a provider that rejected the
// request, e.g. "Claude chapters unavailable (context_overflow)".
func Sentinel(label, subject, reason string) string {
	return fmt.Sprintf("%s %s unavailable (%s)", label, subject, reason)
}

// call runs one provider request. A rejection is logged as a degradation and
// turned into the sentinel text; any other error is returned.
func call(ctx context.Context, log logger.Logger, artifact, subject string, p llm.TextGenerator, req llm.Request) (string, error) {
	text, err := p.Generate(ctx, req)
	if err == nil {
		return text, nil
	}
	if !llm.IsRejection(err) {
		return "", fmt.Errorf("generate %s with %s: %w", artifact, p.Name(), err)
	}

	degraded := &llm.ProviderDegradedError{Provider: p.Name(), Artifact: artifact, Err: err}
	log.Warn(ctx, "%v", degraded)
	return Sentinel(p.Label(), subject, degraded.Reason()), nil
}
