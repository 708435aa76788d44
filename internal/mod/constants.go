package mod

import "time"

// Format is a bundle document encoding
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Cache settings
const (
	DefaultCacheSize   = 32
	DefaultCacheTTL    = 10 * time.Minute
	CacheSchemaVersion = "1.0"
)

// Error messages
const (
	ErrMsgReadFile   = "failed to read bundle %s"
	ErrMsgWriteFile  = "failed to write bundle %s"
	ErrMsgParse      = "failed to parse %s bundle"
	ErrMsgEncode     = "failed to encode %s bundle"
	ErrMsgStructRule = "bundle field %s failed %s"
)
