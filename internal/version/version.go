// In file: internal/version/version.go

// Package version centralizes the versioning for the logical components of the gateway.
//
// The versions are folded into the ETag served with the capability manifest, so a
// client that caches the manifest sees a new tag whenever the tool catalog or the
// fixture data changes, even if the serialized document happens to be identical.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComponentVersions holds the version strings for different logical parts of the application.
// Manually increment a version number here before you deploy a change to that component.
var ComponentVersions = struct {
	// Catalog should be bumped whenever a tool is added or removed, or a
	// request schema changes shape.
	Catalog string

	// Fixtures should be bumped whenever the embedded DataVault fixture documents change.
	Fixtures string
}{
	Catalog:  "v1.0",
	Fixtures: "v1.0",
}

// ManifestETag creates a strong, version-aware entity tag for a manifest document.
//
// Example output: `"a1b2c3d4e5f60718:cv1.0_fv1.0"`
func ManifestETag(document []byte) string {
	sum := sha256.Sum256(document)
	versionString := fmt.Sprintf("cv%s_fv%s", ComponentVersions.Catalog, ComponentVersions.Fixtures)
	return fmt.Sprintf("%q", hex.EncodeToString(sum[:8])+":"+versionString)
}
