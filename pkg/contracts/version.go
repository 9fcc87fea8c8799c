package contracts

import (
	"fmt"
	"runtime"

	"bikeshare/pkg/contracts/domain"
)

// Version is the release of the bikeshare tools
const Version = "1.2.0"

// Set at build time:
//
//	go build -ldflags "-X bikeshare/pkg/contracts.GitCommit=$(git rev-parse --short HEAD) -X bikeshare/pkg/contracts.BuildTime=$(date -u +%FT%TZ)"
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo is served by /api/version
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`

	// What this build can analyze
	Cities        []string `json:"cities"`
	FilterMonths  []string `json:"filter_months"`
	SourceFormats []string `json:"source_formats"`
}

// GetVersionInfo collects the build and capability details
func GetVersionInfo() VersionInfo {
	cities := make([]string, len(domain.Cities))
	for i, c := range domain.Cities {
		cities[i] = string(c)
	}

	return VersionInfo{
		Version:       Version,
		BuildTime:     BuildTime,
		GitCommit:     GitCommit,
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
		Cities:        cities,
		FilterMonths:  append([]string(nil), domain.FilterMonths...),
		SourceFormats: []string{"csv", "xlsx"},
	}
}

// GetFullVersionString is the one-line form printed by -version
func GetFullVersionString() string {
	info := GetVersionInfo()
	return fmt.Sprintf("bikeshare v%s (commit %s, built %s, %s, %s)",
		info.Version, info.GitCommit, info.BuildTime, info.GoVersion, info.Platform)
}
