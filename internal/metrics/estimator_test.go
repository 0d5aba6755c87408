package metrics

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// wordTokenizer counts whitespace separated words and records its inputs.
type wordTokenizer struct {
	inputs []string
}

func (w *wordTokenizer) Count(text string) (int, error) {
	w.inputs = append(w.inputs, text)
	return len(strings.Fields(text)), nil
}

type failingTokenizer struct {
	failOn int
	calls  int
}

func (f *failingTokenizer) Count(text string) (int, error) {
	f.calls++
	if f.calls == f.failOn {
		return 0, errors.New("encoding unavailable")
	}
	return 1, nil
}

func TestEstimate(t *testing.T) {
	tokenizer := &wordTokenizer{}
	estimator := NewEstimator(tokenizer, DefaultRates(), newTestLogger())

	got, err := estimator.Estimate("What is X?", "", "X is Y.")
	require.NoError(t, err)

	require.NotNil(t, got.InputTokens)
	require.NotNil(t, got.OutputTokens)
	require.NotNil(t, got.TotalTokens)
	assert.Equal(t, 3, *got.InputTokens)
	assert.Equal(t, 3, *got.OutputTokens)
	assert.Equal(t, *got.InputTokens+*got.OutputTokens, *got.TotalTokens)
	assert.GreaterOrEqual(t, got.CostUSD, 0.0)

	// 3/1000*0.000075 + 3/1000*0.0003 = 0.000001125 -> 7 places
	assert.Equal(t, 0.0000011, got.CostUSD)
	// 3/80 = 0.0375 -> 2 places
	assert.Equal(t, 0.04, got.LatencySeconds)
}

func TestEstimate_InputIsQueryPlusContextWithoutSeparator(t *testing.T) {
	tokenizer := &wordTokenizer{}
	estimator := NewEstimator(tokenizer, DefaultRates(), newTestLogger())

	_, err := estimator.Estimate("query", "[Source 1]: ctx", "answer")
	require.NoError(t, err)

	require.Len(t, tokenizer.inputs, 2)
	assert.Equal(t, "query[Source 1]: ctx", tokenizer.inputs[0])
	assert.Equal(t, "answer", tokenizer.inputs[1])
}

func TestEstimate_CustomRates(t *testing.T) {
	estimator := NewEstimator(&wordTokenizer{}, Rates{
		InputCostPer1K:  1,
		OutputCostPer1K: 2,
		TokensPerSecond: 4,
	}, newTestLogger())

	got, err := estimator.Estimate(strings.Repeat("w ", 1000), "", strings.Repeat("w ", 10))
	require.NoError(t, err)

	assert.Equal(t, 1.02, got.CostUSD)
	assert.Equal(t, 2.5, got.LatencySeconds)
}

func TestEstimate_TokenizerFailureIsZeroed(t *testing.T) {
	for _, failOn := range []int{1, 2} {
		estimator := NewEstimator(&failingTokenizer{failOn: failOn}, DefaultRates(), newTestLogger())

		got, err := estimator.Estimate("q", "c", "r")
		require.Error(t, err)

		assert.Nil(t, got.InputTokens)
		assert.Nil(t, got.OutputTokens)
		assert.Nil(t, got.TotalTokens)
		assert.Zero(t, got.CostUSD)
		assert.Zero(t, got.LatencySeconds)
	}
}

func TestNewEstimator_NonPositiveThroughputUsesDefault(t *testing.T) {
	estimator := NewEstimator(&wordTokenizer{}, Rates{}, newTestLogger())

	got, err := estimator.Estimate("", "", strings.Repeat("w ", 160))
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.LatencySeconds)
}

func TestTiktokenTokenizer(t *testing.T) {
	tokenizer := NewTiktokenTokenizer("")

	n, err := tokenizer.Count("hello world")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	empty, err := tokenizer.Count("")
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestTiktokenTokenizer_UnknownEncoding(t *testing.T) {
	tokenizer := NewTiktokenTokenizer("no_such_encoding")

	_, err := tokenizer.Count("text")
	assert.ErrorContains(t, err, "no_such_encoding")

	// a failed load is not cached
	_, err = tokenizer.Count("text")
	assert.Error(t, err)
	assert.Nil(t, tokenizer.encoder)
}

func TestTiktokenTokenizer_RecoversAfterFailedLoad(t *testing.T) {
	tokenizer := NewTiktokenTokenizer("no_such_encoding")

	_, err := tokenizer.Count("text")
	require.Error(t, err)

	tokenizer.encoding = DefaultEncoding
	n, err := tokenizer.Count("hello world")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
