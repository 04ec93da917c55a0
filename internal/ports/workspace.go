package ports

// WorkspacePort discovers manifest files below a directory.
type WorkspacePort interface {
	// FindManifests returns manifest paths in directory order. When
	// recursive is false only the directory itself is inspected.
	FindManifests(root string, recursive bool) ([]string, error)
}
