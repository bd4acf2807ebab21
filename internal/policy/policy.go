package policy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the immutable rule configuration for one scan: banned token and
// header sets, per-path allowlists and the strict-mode blessed set. It is
// built once at startup and passed by reference into every rule; nothing
// mutates it while a scan is running.
type Config struct {
	// CodeExtensions are the lowercase file suffixes treated as source code.
	CodeExtensions map[string]bool

	// ForbiddenTokens are exception/RTTI keywords banned everywhere.
	ForbiddenTokens []string

	// HeavyIncludes are STL headers banned by full path or basename.
	HeavyIncludes map[string]bool

	// CoreAllocCalls are CRT allocation functions banned inside the core
	// subtree (direct calls only; member calls of the same name are fine).
	CoreAllocCalls []string

	// CoreSubtree and ModulesSubtree are forward-slash relative prefixes.
	// Only CoreSubtree receives the core-only rules.
	CoreSubtree    string
	ModulesSubtree string

	// TokenAllowlist maps relative path -> tokens permitted there.
	TokenAllowlist map[string]map[string]bool

	// CoreTokenAllowlist maps relative path -> CRT calls permitted there.
	CoreTokenAllowlist map[string]map[string]bool

	// HeavyIncludeAllowlist maps relative path -> headers permitted there.
	HeavyIncludeAllowlist map[string]map[string]bool

	// Blessed holds the (path, reason) pairs strict mode still tolerates.
	Blessed map[BlessedKey]bool
}

// BlessedKey identifies one tolerated allowlist usage.
type BlessedKey struct {
	Path   string
	Reason string
}

// Default returns the built-in policy for a conventional engine tree laid out
// as Source/Core plus Source/Modules.
func Default() *Config {
	return &Config{
		CodeExtensions: setOf(
			".h", ".hpp", ".hxx", ".hh",
			".c", ".cc", ".cpp", ".cxx",
			".ipp", ".tpp", ".inl",
		),
		ForbiddenTokens: []string{"throw", "try", "catch", "dynamic_cast", "typeid"},
		HeavyIncludes:   setOf("regex", "filesystem", "iostream", "locale"),
		CoreAllocCalls:  []string{"malloc", "free", "realloc", "calloc"},
		CoreSubtree:     "Source/Core/",
		ModulesSubtree:  "Source/Modules/",
		TokenAllowlist:  map[string]map[string]bool{},
		CoreTokenAllowlist: map[string]map[string]bool{
			"Source/Core/Memory/GlobalNewDelete.cpp": setOf("malloc", "free"),
		},
		HeavyIncludeAllowlist: map[string]map[string]bool{},
		Blessed: map[BlessedKey]bool{
			{Path: "Source/Core/Memory/GlobalNewDelete.cpp", Reason: "core:malloc"}: true,
			{Path: "Source/Core/Memory/GlobalNewDelete.cpp", Reason: "core:free"}:   true,
		},
	}
}

// IsCorePath reports whether a forward-slash relative path falls under the
// restricted core subtree.
func (c *Config) IsCorePath(rel string) bool {
	return strings.HasPrefix(rel, c.CoreSubtree)
}

// TokenAllowed reports whether path may use a generally forbidden token.
func (c *Config) TokenAllowed(path, token string) bool {
	return c.TokenAllowlist[path][token]
}

// CoreCallAllowed reports whether path may call a banned CRT function.
func (c *Config) CoreCallAllowed(path, fn string) bool {
	return c.CoreTokenAllowlist[path][fn]
}

// IncludeAllowed reports whether path may include a heavy header. The match
// key is whichever of the full header path or its basename hit the ban set.
func (c *Config) IncludeAllowed(path, header string) bool {
	return c.HeavyIncludeAllowlist[path][header]
}

// IsBlessed reports whether strict mode tolerates this allowlist usage.
func (c *Config) IsBlessed(path, reason string) bool {
	return c.Blessed[BlessedKey{Path: path, Reason: reason}]
}

// AllowlistSummary describes every non-empty allowlist map for the
// no-allowlists cleanup gate. Empty result means all maps are empty.
func (c *Config) AllowlistSummary() []string {
	var out []string
	if n := len(c.TokenAllowlist); n > 0 {
		out = append(out, fmt.Sprintf("token_allowlist=%d", n))
	}
	if n := len(c.CoreTokenAllowlist); n > 0 {
		out = append(out, fmt.Sprintf("core_token_allowlist=%d", n))
	}
	if n := len(c.HeavyIncludeAllowlist); n > 0 {
		out = append(out, fmt.Sprintf("heavy_include_allowlist=%d", n))
	}
	return out
}

// filePolicy is the on-disk YAML shape. Every field is optional; token and
// header lists replace the defaults when present, allowlists and blessed
// pairs are merged on top of them.
type filePolicy struct {
	CoreSubtree     string   `yaml:"core_subtree"`
	ModulesSubtree  string   `yaml:"modules_subtree"`
	ForbiddenTokens []string `yaml:"forbidden_tokens"`
	HeavyIncludes   []string `yaml:"heavy_includes"`

	TokenAllowlist        map[string][]string `yaml:"token_allowlist"`
	CoreTokenAllowlist    map[string][]string `yaml:"core_token_allowlist"`
	HeavyIncludeAllowlist map[string][]string `yaml:"heavy_include_allowlist"`

	Blessed []struct {
		Path   string `yaml:"path"`
		Reason string `yaml:"reason"`
	} `yaml:"blessed"`
}

// LoadFile overlays a YAML policy file onto the built-in defaults.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse overlays YAML policy bytes onto the built-in defaults.
func Parse(b []byte) (*Config, error) {
	var fp filePolicy
	if err := yaml.Unmarshal(b, &fp); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}

	cfg := Default()
	if fp.CoreSubtree != "" {
		cfg.CoreSubtree = ensureSlash(fp.CoreSubtree)
	}
	if fp.ModulesSubtree != "" {
		cfg.ModulesSubtree = ensureSlash(fp.ModulesSubtree)
	}
	if len(fp.ForbiddenTokens) > 0 {
		cfg.ForbiddenTokens = fp.ForbiddenTokens
	}
	if len(fp.HeavyIncludes) > 0 {
		cfg.HeavyIncludes = setOf(fp.HeavyIncludes...)
	}
	for p, toks := range fp.TokenAllowlist {
		cfg.TokenAllowlist[p] = setOf(toks...)
	}
	for p, toks := range fp.CoreTokenAllowlist {
		cfg.CoreTokenAllowlist[p] = setOf(toks...)
	}
	for p, hdrs := range fp.HeavyIncludeAllowlist {
		cfg.HeavyIncludeAllowlist[p] = setOf(hdrs...)
	}
	for _, bl := range fp.Blessed {
		cfg.Blessed[BlessedKey{Path: bl.Path, Reason: bl.Reason}] = true
	}
	return cfg, nil
}

func ensureSlash(s string) string {
	s = strings.ReplaceAll(s, "\\", "/")
	if !strings.HasSuffix(s, "/") {
		s += "/"
	}
	return s
}

func setOf(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
