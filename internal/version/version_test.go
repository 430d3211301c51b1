package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManifestETagDeterministic(t *testing.T) {
	doc := []byte(`{"openapi":"3.1.0"}`)
	assert.Equal(t, ManifestETag(doc), ManifestETag(doc))
	assert.NotEqual(t, ManifestETag(doc), ManifestETag([]byte(`{"openapi":"3.0.0"}`)))
}

func TestManifestETagCarriesVersions(t *testing.T) {
	tag := ManifestETag([]byte("{}"))
	assert.True(t, strings.HasPrefix(tag, `"`))
	assert.True(t, strings.HasSuffix(tag, `"`))
	assert.Contains(t, tag, "cv"+ComponentVersions.Catalog)
	assert.Contains(t, tag, "fv"+ComponentVersions.Fixtures)
}
