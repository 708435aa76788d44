package logger

import (
	"log/slog"
	"strings"
)

// Config selects the handler and the attributes stamped on every record.
// Empty Facility and Version are left out of the record.
type Config struct {
	Level       string
	Format      string
	Service     string
	Version     string
	Environment string
	Facility    string
	AddSource   bool
}

// ParseLevel maps a level name to a slog level. Unknown names report false
// and fall back to info.
func ParseLevel(name string) (slog.Level, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == LogLevelWarning {
		name = LogLevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, false
	}
	return lvl, true
}

// LogLevel is the parsed Level, info when unset or unknown
func (c Config) LogLevel() slog.Level {
	lvl, _ := ParseLevel(c.Level)
	return lvl
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

func (c Config) baseAttrs() []slog.Attr {
	service := c.Service
	if service == "" {
		service = DefaultServiceName
	}
	attrs := []slog.Attr{slog.String(AttrKeyService, service)}
	if c.Version != "" {
		attrs = append(attrs, slog.String(AttrKeyVersion, c.Version))
	}
	if c.Environment != "" {
		attrs = append(attrs, slog.String(AttrKeyEnvironment, c.Environment))
	}
	if c.Facility != "" {
		attrs = append(attrs, slog.String(AttrKeyFacility, c.Facility))
	}
	return attrs
}
