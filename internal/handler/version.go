package handler

import (
	"net/http"
	"runtime"
	"runtime/debug"
	"sync"
)

// VersionInfo identifies the running facility and the binary serving it
type VersionInfo struct {
	Factory   string `json:"factory"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Revision  string `json:"revision,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

var buildInfo = sync.OnceValue(func() VersionInfo {
	info := VersionInfo{GoVersion: runtime.Version()}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.BuiltAt = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
})

// HandleVersion reports the facility name, configured version and the VCS
// stamp the toolchain embedded in the binary
func HandleVersion(factoryName, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := buildInfo()
		info.Factory = factoryName
		info.Version = version
		respondJSON(w, http.StatusOK, info)
	}
}
