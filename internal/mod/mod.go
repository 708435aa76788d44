// Package mod reads and writes scenario bundles. Documents are checked
// against the bundle JSON schema, then struct rules, then catalog cross
// references, before anything is handed to a facility.
package mod

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/validation"
)

// ErrUnsupportedFormat is returned for file extensions other than .json, .yaml and .yml
var ErrUnsupportedFormat = errors.New("unsupported bundle format")

// Loader decodes bundles and remembers the ones it has already checked
type Loader struct {
	schemas validation.SchemaValidator
	structs *validator.Validate
	cache   *bundleCache
}

// Option configures a Loader
type Option func(*loaderOptions)

type loaderOptions struct {
	cacheSize int
	cacheTTL  time.Duration
}

// WithCache sets the decoded-bundle cache size and entry lifetime
func WithCache(size int, ttl time.Duration) Option {
	return func(o *loaderOptions) {
		o.cacheSize = size
		o.cacheTTL = ttl
	}
}

// NewLoader creates a Loader
func NewLoader(opts ...Option) *Loader {
	o := loaderOptions{cacheSize: DefaultCacheSize, cacheTTL: DefaultCacheTTL}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader{
		schemas: validation.NewSchemaValidator(),
		structs: validator.New(validator.WithRequiredStructEnabled()),
		cache:   newBundleCache(o.cacheSize, o.cacheTTL),
	}
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFormat accepts "json", "yaml" or "yml"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// LoadFile reads and decodes a bundle file
func (l *Loader) LoadFile(path string) (factory.Bundle, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return factory.Bundle{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return factory.Bundle{}, fmt.Errorf(ErrMsgReadFile+": %w", path, err)
	}
	return l.Decode(data, format)
}

// Decode parses and checks a bundle document. Identical documents are
// served from the cache without being checked again.
func (l *Loader) Decode(data []byte, format Format) (factory.Bundle, error) {
	digest := Digest(data, format)
	if b, ok := l.cache.Get(digest); ok {
		return b, nil
	}

	var b factory.Bundle
	switch format {
	case FormatJSON:
		if err := l.schemas.ValidateBytes(data, validation.SchemaBundle); err != nil {
			return factory.Bundle{}, err
		}
		if err := json.Unmarshal(data, &b); err != nil {
			return factory.Bundle{}, fmt.Errorf(ErrMsgParse+": %w", format, err)
		}
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return factory.Bundle{}, fmt.Errorf(ErrMsgParse+": %w", format, err)
		}
		if err := l.schemas.ValidateValue(doc, validation.SchemaBundle); err != nil {
			return factory.Bundle{}, err
		}
		if err := yaml.Unmarshal(data, &b); err != nil {
			return factory.Bundle{}, fmt.Errorf(ErrMsgParse+": %w", format, err)
		}
	default:
		return factory.Bundle{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := l.checkStruct(b); err != nil {
		return factory.Bundle{}, err
	}
	if _, err := b.Build(); err != nil {
		return factory.Bundle{}, err
	}
	if b.Version == "" {
		b.Version = factory.DefaultBundleVersion
	}

	l.cache.Set(digest, b)
	return b, nil
}

// checkStruct applies the validate tags and reports the first broken rule
func (l *Loader) checkStruct(b factory.Bundle) error {
	err := l.structs.Struct(b)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: "+ErrMsgStructRule, domain.ErrInvalidCatalog, fe.Namespace(), fe.Tag())
	}
	return err
}

// Encode renders a bundle in the given format
func Encode(b factory.Bundle, format Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(b, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(b)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEncode+": %w", format, err)
	}
	return data, nil
}

// WriteFile encodes b in the format implied by path
func WriteFile(path string, b factory.Bundle) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(b, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf(ErrMsgWriteFile+": %w", path, err)
	}
	return nil
}

// Digest is the cache key of a document
func Digest(data []byte, format Format) string {
	h := sha256.New()
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CachedBundles reports how many decoded bundles are cached
func (l *Loader) CachedBundles() int {
	return l.cache.Len()
}

func cloneBundle(b factory.Bundle) factory.Bundle {
	out := b
	out.InitialMaterials = maps.Clone(b.InitialMaterials)
	if b.Products != nil {
		out.Products = make([]domain.Product, len(b.Products))
		for i, p := range b.Products {
			out.Products[i] = p.Clone()
		}
	}
	if b.Materials != nil {
		out.Materials = make([]domain.Material, len(b.Materials))
		for i, m := range b.Materials {
			out.Materials[i] = m.Clone()
		}
	}
	if b.InitialWorkers != nil {
		out.InitialWorkers = append([]domain.Worker(nil), b.InitialWorkers...)
	}
	if b.CraftingStations != nil {
		out.CraftingStations = append([]factory.StationSpec(nil), b.CraftingStations...)
	}
	return out
}
