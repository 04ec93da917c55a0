package types

// LockFileName is written next to the root manifest by `conche lock`.
const LockFileName = "Conche.lock"

// LockEntry pins one resolved package.
type LockEntry struct {
	Name    string
	Version string
	Git     string
	Tag     string
}
