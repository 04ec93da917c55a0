package adapters

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conche/internal/ports"
	"conche/internal/types"
)

const DefaultSBOMNamespace = "https://spdx.org/spdxdocs/conche"

// SBOMWriterAdapter writes SPDX 2.3 JSON documents.
type SBOMWriterAdapter struct {
	NamespaceBase string
}

func NewSBOMWriterAdapter() SBOMWriterAdapter {
	return SBOMWriterAdapter{NamespaceBase: DefaultSBOMNamespace}
}

func (a SBOMWriterAdapter) namespaceBase() string {
	if base := strings.TrimRight(strings.TrimSpace(a.NamespaceBase), "/"); base != "" {
		return base
	}
	return DefaultSBOMNamespace
}

type spdxCreationInfo struct {
	Created  string   `json:"created"`
	Creators []string `json:"creators"`
}

type spdxPackage struct {
	SPDXID           string `json:"SPDXID"`
	Name             string `json:"name"`
	VersionInfo      string `json:"versionInfo"`
	DownloadLocation string `json:"downloadLocation"`
	LicenseConcluded string `json:"licenseConcluded"`
	LicenseDeclared  string `json:"licenseDeclared"`
	Supplier         string `json:"supplier"`
}

type spdxRelationship struct {
	SpdxElementID      string `json:"spdxElementId"`
	RelationshipType   string `json:"relationshipType"`
	RelatedSpdxElement string `json:"relatedSpdxElement"`
}

type spdxDocument struct {
	SPDXVersion       string             `json:"SPDXVersion"`
	DataLicense       string             `json:"dataLicense"`
	SPDXID            string             `json:"SPDXID"`
	Name              string             `json:"name"`
	DocumentNamespace string             `json:"documentNamespace"`
	CreationInfo      spdxCreationInfo   `json:"creationInfo"`
	Packages          []spdxPackage      `json:"packages"`
	Relationships     []spdxRelationship `json:"relationships"`
	DocumentDescribes []string           `json:"documentDescribes"`
}

// WriteSBOM describes root and records a DEPENDS_ON relationship from it
// to every other entry. Packages are sorted by name.
func (a SBOMWriterAdapter) WriteSBOM(path string, root string, createdAt string, entries []types.LockEntry) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sbom path is empty")
	}
	if strings.TrimSpace(root) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sbom root package is empty")
	}
	ordered := append([]types.LockEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})
	created := strings.TrimSpace(createdAt)
	if created == "" {
		created = time.Now().UTC().Format(time.RFC3339)
	}

	rootID := ""
	for _, entry := range ordered {
		if entry.Name == root {
			rootID = spdxPackageID(entry.Name, entry.Version)
		}
	}
	if rootID == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("sbom root package %s is not among the entries", root))
	}

	doc := spdxDocument{
		SPDXVersion:       "SPDX-2.3",
		DataLicense:       "CC0-1.0",
		SPDXID:            "SPDXRef-DOCUMENT",
		Name:              "conche " + root,
		DocumentNamespace: fmt.Sprintf("%s/%s-%s", a.namespaceBase(), root, rootID[len("SPDXRef-Package-"):]),
		CreationInfo: spdxCreationInfo{
			Created:  created,
			Creators: []string{"Tool: conche"},
		},
		DocumentDescribes: []string{rootID},
		Relationships: []spdxRelationship{{
			SpdxElementID:      "SPDXRef-DOCUMENT",
			RelationshipType:   "DESCRIBES",
			RelatedSpdxElement: rootID,
		}},
	}
	for _, entry := range ordered {
		spdxID := spdxPackageID(entry.Name, entry.Version)
		doc.Packages = append(doc.Packages, spdxPackage{
			SPDXID:           spdxID,
			Name:             entry.Name,
			VersionInfo:      entry.Version,
			DownloadLocation: downloadLocation(entry),
			LicenseConcluded: "NOASSERTION",
			LicenseDeclared:  "NOASSERTION",
			Supplier:         "NOASSERTION",
		})
		if spdxID != rootID {
			doc.Relationships = append(doc.Relationships, spdxRelationship{
				SpdxElementID:      rootID,
				RelationshipType:   "DEPENDS_ON",
				RelatedSpdxElement: spdxID,
			})
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal sbom payload").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create sbom directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write sbom file").
			WithCause(err)
	}
	return nil
}

func downloadLocation(entry types.LockEntry) string {
	if entry.Git == "" {
		return "NOASSERTION"
	}
	if entry.Tag == "" {
		return "git+" + entry.Git
	}
	return "git+" + entry.Git + "@" + entry.Tag
}

func spdxPackageID(name string, version string) string {
	seed := fmt.Sprintf("%s@%s", name, version)
	hash := sha256.Sum256([]byte(seed))
	return "SPDXRef-Package-" + hex.EncodeToString(hash[:8])
}

var _ ports.SBOMPort = SBOMWriterAdapter{}
