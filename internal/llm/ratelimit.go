package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// rateLimitedClient paces calls to the wrapped client with a token bucket.
type rateLimitedClient struct {
	next    LLMClient
	limiter *rate.Limiter
}

// WithRateLimit wraps next so that at most requestsPerSecond calls start per
// second, with bursts up to burst. A non-positive rate returns next unchanged.
func WithRateLimit(next LLMClient, requestsPerSecond float64, burst int) LLMClient {
	if requestsPerSecond <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}

	return &rateLimitedClient{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

func (r *rateLimitedClient) InvokeModel(ctx context.Context, request LLMRequest) (*LLMResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return r.next.InvokeModel(ctx, request)
}
