package ports

import "conche/internal/types"

// SBOMPort records the packages of a resolution as a software bill of
// materials. root names the package the document describes.
type SBOMPort interface {
	WriteSBOM(path string, root string, createdAt string, entries []types.LockEntry) error
}
