package domain

import (
	"fmt"
	"slices"
)

// TokenIndex is an immutable bijection between an entity's natural key (its token)
// and a dense zero-based index used to address matrix rows and columns.
type TokenIndex struct {
	indices map[int]int
	tokens  []int
}

// TokenIndexBuilder assigns dense indices to tokens in first-seen order.
// Build produces the immutable index; the builder must not be reused afterwards.
type TokenIndexBuilder struct {
	indices map[int]int
	tokens  []int
}

func NewTokenIndexBuilder() *TokenIndexBuilder {
	return &TokenIndexBuilder{indices: make(map[int]int)}
}

// Add assigns the next index to token if it has not been seen, and returns its index.
func (b *TokenIndexBuilder) Add(token int) int {
	if idx, ok := b.indices[token]; ok {
		return idx
	}
	idx := len(b.tokens)
	b.indices[token] = idx
	b.tokens = append(b.tokens, token)
	return idx
}

// Set records an explicit token/index pair, as read from a token dictionary file.
// Indices must form a dense range once all pairs are set.
func (b *TokenIndexBuilder) Set(token, idx int) error {
	if idx < 0 {
		return fmt.Errorf("negative index %d for token %d: %w", idx, token, ErrInvalidArgument)
	}
	if existing, ok := b.indices[token]; ok && existing != idx {
		return fmt.Errorf("token %d mapped to both %d and %d: %w", token, existing, idx, ErrInvalidArgument)
	}
	for len(b.tokens) <= idx {
		b.tokens = append(b.tokens, -1)
	}
	if b.tokens[idx] != -1 && b.tokens[idx] != token {
		return fmt.Errorf("index %d mapped to both %d and %d: %w", idx, b.tokens[idx], token, ErrInvalidArgument)
	}
	b.indices[token] = idx
	b.tokens[idx] = token
	return nil
}

// Build returns the immutable index. It fails if explicitly set indices left gaps.
func (b *TokenIndexBuilder) Build() (TokenIndex, error) {
	if len(b.indices) != len(b.tokens) {
		return TokenIndex{}, fmt.Errorf("token index has %d tokens for %d indices: %w",
			len(b.indices), len(b.tokens), ErrInvalidArgument)
	}

	indices := make(map[int]int, len(b.indices))
	for token, idx := range b.indices {
		indices[token] = idx
	}
	return TokenIndex{indices: indices, tokens: slices.Clone(b.tokens)}, nil
}

// NewTokenIndex builds an index assigning tokens their position in the slice.
func NewTokenIndex(tokens []int) (TokenIndex, error) {
	b := NewTokenIndexBuilder()
	for i, token := range tokens {
		if err := b.Set(token, i); err != nil {
			return TokenIndex{}, err
		}
	}
	return b.Build()
}

// Index returns the dense index for token.
func (t TokenIndex) Index(token int) (int, bool) {
	idx, ok := t.indices[token]
	return idx, ok
}

// Token returns the natural key stored at idx.
func (t TokenIndex) Token(idx int) (int, bool) {
	if idx < 0 || idx >= len(t.tokens) {
		return 0, false
	}
	return t.tokens[idx], true
}

// Lookup is Index for callers that treat a miss as an error.
func (t TokenIndex) Lookup(token int) (int, error) {
	idx, ok := t.indices[token]
	if !ok {
		return 0, fmt.Errorf("token %d: %w", token, ErrNotFound)
	}
	return idx, nil
}

// Len is the number of entities in the index.
func (t TokenIndex) Len() int {
	return len(t.tokens)
}

// Tokens returns the tokens in index order.
func (t TokenIndex) Tokens() []int {
	return slices.Clone(t.tokens)
}
