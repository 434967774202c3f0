package factory

import (
	"tusktsk/internal/diagfmt"
	"tusktsk/internal/sema"
)

// Options is the recognized configuration of a parser factory.
type Options struct {
	// PerformSemanticAnalysis runs the semantic phase after a clean parse.
	PerformSemanticAnalysis bool
	// IncludeTokens retains the token list on results.
	IncludeTokens bool
	// EnableCaching snapshots successful results keyed by source identity
	// and content hash.
	EnableCaching bool
	// MaxCacheSize bounds the in-memory cache entry count.
	MaxCacheSize int
	// PersistentCache additionally mirrors successful snapshots to disk.
	PersistentCache bool

	// Semantic holds the nested semantic-analysis options.
	Semantic sema.Options
	// Format holds the nested diagnostic-formatting options.
	Format diagfmt.PrettyOpts
}

// DefaultOptions matches the documented defaults: semantic analysis and
// caching on, token retention off, cache capacity 100.
func DefaultOptions() Options {
	return Options{
		PerformSemanticAnalysis: true,
		IncludeTokens:           false,
		EnableCaching:           true,
		MaxCacheSize:            100,
		Semantic:                sema.DefaultOptions(),
		Format:                  diagfmt.PrettyOpts{ShowPreview: true},
	}
}
