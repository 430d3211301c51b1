// In file: cmd/gateway/version.go
package main

import (
	"fmt"
	"runtime"

	components "github.com/dileep-u-k/aegis-gateway/internal/version"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

type BuildInfo struct {
	Version, BuildDate, GitCommit, GoVersion, Platform string
	Catalog, Fixtures                                  string
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Catalog:   components.ComponentVersions.Catalog,
		Fixtures:  components.ComponentVersions.Fixtures,
	}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("gateway %s (commit %s, built %s) %s %s, catalog %s, fixtures %s",
		b.Version, b.GitCommit, b.BuildDate, b.GoVersion, b.Platform, b.Catalog, b.Fixtures)
}
