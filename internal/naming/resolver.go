// Package naming maps user-typed names onto catalog and roster names:
// case-insensitive matches, configured aliases, and "did you mean" hints.
package naming

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// Resolver handles name resolution against the names currently in play
type Resolver interface {
	// Resolve converts typed input to a canonical name
	Resolve(kind Kind, input string) (canonical string, ok bool)

	// Suggest returns close canonical names for input that did not resolve
	Suggest(kind Kind, input string) []string

	// Sync replaces the canonical names of one kind
	Sync(kind Kind, names []string)

	// Reload reloads the alias configuration
	Reload() error
}

type resolver struct {
	mu sync.RWMutex

	// Canonical names in registration order, per kind
	names map[Kind][]string

	// Folded name -> canonical name, per kind
	folded map[Kind]map[string]string

	// Folded alias -> canonical name, per kind
	aliases map[Kind]map[string]string

	aliasesPath string
}

// NewResolver creates a resolver. An empty or missing aliases file is not an error.
func NewResolver(aliasesPath string) (Resolver, error) {
	r := &resolver{
		names:       make(map[Kind][]string),
		folded:      make(map[Kind]map[string]string),
		aliases:     make(map[Kind]map[string]string),
		aliasesPath: aliasesPath,
	}

	if err := r.Reload(); err != nil {
		return nil, err
	}

	return r, nil
}

// fold normalises case for comparison. Casers are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Sync replaces the known names of one kind
func (r *resolver) Sync(kind Kind, names []string) {
	index := make(map[string]string, len(names))
	for _, n := range names {
		index[fold(n)] = n
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[kind] = slices.Clone(names)
	r.folded[kind] = index
}

// Resolve tries an exact match, then a case-insensitive one, then aliases.
// Aliases only resolve to names that are currently known.
func (r *resolver) Resolve(kind Kind, input string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if slices.Contains(r.names[kind], input) {
		return input, true
	}
	key := fold(input)
	if canonical, ok := r.folded[kind][key]; ok {
		return canonical, true
	}
	if target, ok := r.aliases[kind][key]; ok {
		if canonical, known := r.folded[kind][fold(target)]; known {
			return canonical, true
		}
	}
	return "", false
}

// Suggest ranks known names by edit distance to input, closest first
func (r *resolver) Suggest(kind Kind, input string) []string {
	key := fold(input)
	if len([]rune(key)) < MinSuggestInput {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	type candidate struct {
		name string
		dist int
	}
	var cands []candidate
	for _, n := range r.names[kind] {
		folded := fold(n)
		if strings.HasPrefix(folded, key) {
			cands = append(cands, candidate{name: n, dist: 0})
			continue
		}
		dist := levenshtein.ComputeDistance(key, folded)
		if dist > distanceLimit(len([]rune(folded))) {
			continue
		}
		cands = append(cands, candidate{name: n, dist: dist})
	}

	slices.SortStableFunc(cands, func(a, b candidate) int {
		if a.dist != b.dist {
			return a.dist - b.dist
		}
		return strings.Compare(a.name, b.name)
	})

	out := make([]string, 0, MaxSuggestions)
	for _, c := range cands {
		if len(out) == MaxSuggestions {
			break
		}
		out = append(out, c.name)
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Reload reloads the alias configuration
func (r *resolver) Reload() error {
	if r.aliasesPath == "" {
		return nil
	}

	aliases, err := loadAliases(r.aliasesPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToLoadAliases, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases = aliases
	return nil
}

func loadAliases(path string) (map[Kind]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[Kind]map[string]string{}, nil
		}
		return nil, err
	}

	// Wrapper to handle common fields
	var wrapper struct {
		Version string `json:"version"`
		Schema  string `json:"schema"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf(ErrContextFailedToParseConfig+": %w", path, err)
	}
	if wrapper.Version == "" {
		return nil, fmt.Errorf(ErrMsgMissingVersionField, path)
	}
	if wrapper.Schema != SchemaAliases {
		return nil, fmt.Errorf(ErrMsgInvalidSchema, path, SchemaAliases, wrapper.Schema)
	}

	var config struct {
		Aliases map[Kind]map[string]string `json:"aliases"`
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrContextFailedToDecodeData+": %w", path, err)
	}

	out := make(map[Kind]map[string]string, len(config.Aliases))
	for kind, pairs := range config.Aliases {
		m := make(map[string]string, len(pairs))
		for alias, target := range pairs {
			m[fold(alias)] = target
		}
		out[kind] = m
	}
	return out, nil
}
