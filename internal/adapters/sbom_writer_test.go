package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conche/internal/types"
)

type sbomDoc struct {
	SPDXVersion       string `json:"SPDXVersion"`
	DocumentNamespace string `json:"documentNamespace"`
	Name              string `json:"name"`
	Packages          []struct {
		SPDXID           string `json:"SPDXID"`
		Name             string `json:"name"`
		VersionInfo      string `json:"versionInfo"`
		DownloadLocation string `json:"downloadLocation"`
	} `json:"packages"`
	Relationships []struct {
		SpdxElementID      string `json:"spdxElementId"`
		RelationshipType   string `json:"relationshipType"`
		RelatedSpdxElement string `json:"relatedSpdxElement"`
	} `json:"relationships"`
	DocumentDescribes []string `json:"documentDescribes"`
}

func readSBOM(t *testing.T, path string) sbomDoc {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc sbomDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestSBOMWriterAdapter_WriteSBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "App.spdx.json")
	adapter := NewSBOMWriterAdapter()

	entries := []types.LockEntry{
		{Name: "PathKit", Version: "0.6.1", Git: "https://github.com/kylef/PathKit.git", Tag: "0.6.1"},
		{Name: "App", Version: "1.0.0"},
	}
	require.NoError(t, adapter.WriteSBOM(path, "App", "2026-01-01T00:00:00Z", entries))

	doc := readSBOM(t, path)
	assert.Equal(t, "SPDX-2.3", doc.SPDXVersion)
	assert.Equal(t, "conche App", doc.Name)
	assert.True(t, strings.HasPrefix(doc.DocumentNamespace, DefaultSBOMNamespace+"/App-"))
	require.Len(t, doc.Packages, 2)
	// Packages are sorted alphabetically.
	assert.Equal(t, "App", doc.Packages[0].Name)
	assert.Equal(t, "NOASSERTION", doc.Packages[0].DownloadLocation)
	assert.Equal(t, "PathKit", doc.Packages[1].Name)
	assert.Equal(t, "0.6.1", doc.Packages[1].VersionInfo)
	assert.Equal(t, "git+https://github.com/kylef/PathKit.git@0.6.1", doc.Packages[1].DownloadLocation)

	rootID := doc.Packages[0].SPDXID
	assert.Equal(t, []string{rootID}, doc.DocumentDescribes)
	require.Len(t, doc.Relationships, 2)
	assert.Equal(t, "DESCRIBES", doc.Relationships[0].RelationshipType)
	assert.Equal(t, rootID, doc.Relationships[1].SpdxElementID)
	assert.Equal(t, "DEPENDS_ON", doc.Relationships[1].RelationshipType)
	assert.Equal(t, doc.Packages[1].SPDXID, doc.Relationships[1].RelatedSpdxElement)
}

func TestSBOMWriterAdapter_CustomNamespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sbom.json")
	adapter := SBOMWriterAdapter{NamespaceBase: "https://custom.example.com/sbom/"}

	require.NoError(t, adapter.WriteSBOM(path, "App", "", []types.LockEntry{{Name: "App", Version: "1.0.0"}}))
	doc := readSBOM(t, path)
	assert.True(t, strings.HasPrefix(doc.DocumentNamespace, "https://custom.example.com/sbom/App-"))
}

func TestSBOMWriterAdapter_EmptyNamespaceFallsBack(t *testing.T) {
	adapter := SBOMWriterAdapter{NamespaceBase: ""}
	assert.Equal(t, DefaultSBOMNamespace, adapter.namespaceBase())
}

func TestSBOMWriterAdapter_InvalidArguments(t *testing.T) {
	adapter := NewSBOMWriterAdapter()
	entries := []types.LockEntry{{Name: "App", Version: "1.0.0"}}

	err := adapter.WriteSBOM("", "App", "", entries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sbom path is empty")

	err = adapter.WriteSBOM(filepath.Join(t.TempDir(), "sbom.json"), "", "", entries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sbom root package is empty")

	err = adapter.WriteSBOM(filepath.Join(t.TempDir(), "sbom.json"), "Other", "", entries)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestSBOMWriterAdapter_DirectoryPermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	adapter := NewSBOMWriterAdapter()
	require.NoError(t, adapter.WriteSBOM(filepath.Join(dir, "sbom.json"), "App", "", []types.LockEntry{{Name: "App", Version: "1.0.0"}}))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0o002, "world-writable bit should not be set")
}
