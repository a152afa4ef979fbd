package domain

// Default chunking parameters applied by the upstream.
const (
	DefaultMaxTokensPerChunk = 200
	DefaultMaxOverlapTokens  = 20
)

// ChunkingConfig controls how the upstream splits a document.
//
// The upstream currently ignores chunking settings on import, so the config
// is accepted for forward compatibility and never sent.
type ChunkingConfig struct {
	MaxTokensPerChunk int `json:"maxTokensPerChunk"`
	MaxOverlapTokens  int `json:"maxOverlapTokens"`
}

// DefaultChunkingConfig returns the upstream defaults.
func DefaultChunkingConfig() ChunkingConfig {
	return ChunkingConfig{
		MaxTokensPerChunk: DefaultMaxTokensPerChunk,
		MaxOverlapTokens:  DefaultMaxOverlapTokens,
	}
}

// WithDefaults replaces non-positive values with the defaults.
func (c ChunkingConfig) WithDefaults() ChunkingConfig {
	if c.MaxTokensPerChunk <= 0 {
		c.MaxTokensPerChunk = DefaultMaxTokensPerChunk
	}
	if c.MaxOverlapTokens <= 0 {
		c.MaxOverlapTokens = DefaultMaxOverlapTokens
	}
	return c
}
