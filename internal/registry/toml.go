package registry

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// tomlFile is the on-disk shape of a *.toml pattern file: a top-level array
// of tables, each decoding straight into Pattern.
type tomlFile struct {
	Pattern []Pattern `toml:"pattern"`
}

// parseTOMLPatterns decodes content as the alternate pattern format,
// tagging each Pattern with source for later error reporting.
func parseTOMLPatterns(content []byte, source string) ([]Pattern, error) {
	var f tomlFile
	if err := toml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML patterns: %w", source, err)
	}

	for i := range f.Pattern {
		f.Pattern[i].Source = source
	}
	return f.Pattern, nil
}
