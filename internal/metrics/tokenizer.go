package metrics

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const DefaultEncoding = "cl100k_base"

// Tokenizer counts tokens in a piece of text.
type Tokenizer interface {
	Count(text string) (int, error)
}

var registerOfflineLoader sync.Once

// TiktokenTokenizer counts BPE tokens with a tiktoken encoding. The BPE ranks
// are embedded in the binary, so no download happens on first use. The encoder
// is cached once loaded; a failed load is retried on the next call.
type TiktokenTokenizer struct {
	encoding string

	mu      sync.Mutex
	encoder *tiktoken.Tiktoken
}

func NewTiktokenTokenizer(encoding string) *TiktokenTokenizer {
	registerOfflineLoader.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	if encoding == "" {
		encoding = DefaultEncoding
	}
	return &TiktokenTokenizer{encoding: encoding}
}

func (t *TiktokenTokenizer) Count(text string) (count int, err error) {
	encoder, err := t.load()
	if err != nil {
		return 0, err
	}

	defer func() {
		if r := recover(); r != nil {
			count, err = 0, fmt.Errorf("tokenizer panic: %v", r)
		}
	}()

	return len(encoder.Encode(text, nil, nil)), nil
}

func (t *TiktokenTokenizer) load() (*tiktoken.Tiktoken, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.encoder != nil {
		return t.encoder, nil
	}

	encoder, err := tiktoken.GetEncoding(t.encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", t.encoding, err)
	}
	t.encoder = encoder
	return encoder, nil
}
