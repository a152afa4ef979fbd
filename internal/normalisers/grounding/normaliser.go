// Package grounding normalises generateContent responses that carry
// file search grounding metadata into a stable SearchResult.
package grounding

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.ResponseNormaliser = (*Normaliser)(nil)

const op = "normalise search response"

// Normaliser extracts the answer, grounding chunks and sources of the first
// candidate. Every field is optional upstream, so every access is a presence
// check. Normaliser has no state and is safe for concurrent use.
type Normaliser struct{}

// New creates a new grounding normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise converts a raw generateContent response.
func (n *Normaliser) Normalise(raw []byte) (*domain.SearchResult, error) {
	if !gjson.ValidBytes(raw) {
		return nil, shapeError("response is not valid JSON")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, shapeError("response is not a JSON object")
	}

	if e := root.Get("error"); e.Exists() && e.Type != gjson.Null {
		return nil, &domain.UpstreamError{
			Kind:    domain.ErrUpstreamReported,
			Op:      op,
			Message: errorMessage(e),
			Body:    e.Raw,
		}
	}

	if reason := root.Get("promptFeedback.blockReason"); reason.Exists() && reason.String() != "" {
		return nil, &domain.UpstreamError{
			Kind:   domain.ErrContentBlocked,
			Op:     op,
			Reason: reason.String(),
		}
	}

	candidates := root.Get("candidates")
	if !candidates.IsArray() || len(candidates.Array()) == 0 {
		return domain.EmptySearchResult(), nil
	}
	first := candidates.Array()[0]

	chunks := first.Get("groundingMetadata.groundingChunks")
	return &domain.SearchResult{
		Answer:          answer(first),
		GroundingChunks: rawChunks(chunks),
		Sources:         sources(chunks),
	}, nil
}

// answer joins every part carrying a text field with single spaces, empty
// texts included. A blank result is reported as domain.NoAnswer.
func answer(candidate gjson.Result) string {
	parts := candidate.Get("content.parts")
	if !parts.IsArray() {
		return domain.NoAnswer
	}

	var texts []string
	for _, part := range parts.Array() {
		if text := part.Get("text"); text.Type == gjson.String {
			texts = append(texts, text.Str)
		}
	}
	joined := strings.Join(texts, " ")
	if strings.TrimSpace(joined) == "" {
		return domain.NoAnswer
	}
	return joined
}

// rawChunks copies each grounding chunk verbatim.
func rawChunks(chunks gjson.Result) []json.RawMessage {
	out := []json.RawMessage{}
	if !chunks.IsArray() {
		return out
	}
	for _, chunk := range chunks.Array() {
		out = append(out, json.RawMessage(chunk.Raw))
	}
	return out
}

// sources collects unique source identifiers in first-seen order.
// The URI identifies a source; the title is the fallback.
func sources(chunks gjson.Result) []string {
	out := []string{}
	if !chunks.IsArray() {
		return out
	}

	seen := make(map[string]struct{})
	for _, chunk := range chunks.Array() {
		ctx := chunk.Get("retrievedContext")
		if !ctx.IsObject() {
			continue
		}
		id := ctx.Get("uri").String()
		if id == "" {
			id = ctx.Get("title").String()
		}
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func errorMessage(e gjson.Result) string {
	if msg := e.Get("message"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	if e.Type == gjson.String && e.Str != "" {
		return e.Str
	}
	return "upstream reported an error"
}

func shapeError(msg string) error {
	return &domain.UpstreamError{Kind: domain.ErrInvalidResponseShape, Op: op, Message: msg}
}
