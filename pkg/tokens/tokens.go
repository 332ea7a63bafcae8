// Package tokens estimates how many model tokens a document will use.
package tokens

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// DefaultEncoding is the encoding used for token estimates.
const DefaultEncoding = "cl100k_base"

// Counter counts tokens in text.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

var useEmbeddedBPE sync.Once

type tiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewCounter returns a tiktoken counter for the named encoding. An empty
// name selects DefaultEncoding.
func NewCounter(encodingName string) (Counter, error) {
	if encodingName == "" {
		encodingName = DefaultEncoding
	}
	// Ranks come from the embedded dictionaries, never from the network.
	useEmbeddedBPE.Do(func() { tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader()) })

	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("load encoding %s: %w", encodingName, err)
	}
	return tiktokenCounter{encoding: encoding, name: encodingName}, nil
}

func (counter tiktokenCounter) Name() string {
	return counter.name
}

func (counter tiktokenCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}
