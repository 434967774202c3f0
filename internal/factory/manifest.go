package factory

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// ManifestName is the options file looked up next to the documents.
const ManifestName = "tusk.toml"

// manifestTOML mirrors Options with TOML-friendly names and nested tables.
type manifestTOML struct {
	SemanticAnalysis *bool `toml:"semantic_analysis"`
	IncludeTokens    *bool `toml:"include_tokens"`
	Caching          *bool `toml:"caching"`
	MaxCacheSize     *int  `toml:"max_cache_size"`
	PersistentCache  *bool `toml:"persistent_cache"`

	Semantic struct {
		Unused             *bool `toml:"unused"`
		Duplicates         *bool `toml:"duplicates"`
		ImplicitConversion *bool `toml:"implicit_conversion"`
		MixedArrays        *bool `toml:"mixed_arrays"`
		CrossFile          *bool `toml:"cross_file"`
	} `toml:"semantic"`

	Format struct {
		Color   *bool `toml:"color"`
		Preview *bool `toml:"preview"`
		Width   *int  `toml:"width"`
	} `toml:"format"`
}

// LoadManifest reads options from a tusk.toml file, layered over the
// defaults. A missing file yields plain defaults; a malformed one is a real
// error the caller must surface.
func LoadManifest(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return opts, nil
		}
		return opts, err
	}

	var m manifestTOML
	if err := toml.Unmarshal(data, &m); err != nil {
		return opts, err
	}

	setBool(&opts.PerformSemanticAnalysis, m.SemanticAnalysis)
	setBool(&opts.IncludeTokens, m.IncludeTokens)
	setBool(&opts.EnableCaching, m.Caching)
	setBool(&opts.PersistentCache, m.PersistentCache)
	if m.MaxCacheSize != nil && *m.MaxCacheSize > 0 {
		opts.MaxCacheSize = *m.MaxCacheSize
	}

	setBool(&opts.Semantic.WarnUnused, m.Semantic.Unused)
	setBool(&opts.Semantic.WarnDuplicates, m.Semantic.Duplicates)
	setBool(&opts.Semantic.WarnImplicitConversion, m.Semantic.ImplicitConversion)
	setBool(&opts.Semantic.WarnMixedArrays, m.Semantic.MixedArrays)
	setBool(&opts.Semantic.WarnCrossFile, m.Semantic.CrossFile)

	setBool(&opts.Format.Color, m.Format.Color)
	setBool(&opts.Format.ShowPreview, m.Format.Preview)
	if m.Format.Width != nil && *m.Format.Width > 0 {
		opts.Format.Width = *m.Format.Width
	}

	return opts, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
