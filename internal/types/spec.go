package types

type RemoteSource struct {
	URI string
	Tag string
}

type TestSpecification struct {
	SourceFiles  []string
	Dependencies []Dependency
}

// Specification describes one resolvable version of a package. Values are
// treated as immutable once loaded; identity is the (name, version) pair
// returned by Key.
type Specification struct {
	Name         string
	Version      Version
	Dependencies []Dependency
	TestSpec     *TestSpecification
	Source       *RemoteSource
	SourceFiles  []string
	EntryPoints  map[EntryPointKind]map[string]string
	Libraries    []string
}

func (s Specification) Key() string {
	return s.Name + "@" + s.Version.Canonical()
}

func (s Specification) String() string {
	return s.Name + " " + s.Version.String()
}

// TestDependencies returns the dependencies declared by the test
// specification, if any.
func (s Specification) TestDependencies() []Dependency {
	if s.TestSpec == nil {
		return nil
	}
	return s.TestSpec.Dependencies
}
