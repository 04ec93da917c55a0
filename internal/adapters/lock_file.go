package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conche/internal/ports"
	"conche/internal/types"
)

// LockFileAdapter reads and writes lock files, one package per line as
// name,version,git,tag.
type LockFileAdapter struct{}

func NewLockFileAdapter() LockFileAdapter {
	return LockFileAdapter{}
}

func (a LockFileAdapter) WriteLock(path string, entries []types.LockEntry) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lock file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create lock directory").
			WithCause(err)
	}
	ordered := append([]types.LockEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})
	var lines []string
	for _, entry := range ordered {
		lines = append(lines, fmt.Sprintf("%s,%s,%s,%s", entry.Name, entry.Version, entry.Git, entry.Tag))
	}
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + path).
			WithCause(err)
	}
	return nil
}

func (a LockFileAdapter) ReadLock(path string) ([]types.LockEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(filepath.Base(path) + " not found").
			WithCause(err)
	}
	var entries []types.LockEntry
	for i, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 4 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid lock entry on line %d", i+1))
		}
		entries = append(entries, types.LockEntry{
			Name:    strings.TrimSpace(parts[0]),
			Version: strings.TrimSpace(parts[1]),
			Git:     strings.TrimSpace(parts[2]),
			Tag:     strings.TrimSpace(parts[3]),
		})
	}
	return entries, nil
}

var _ ports.LockPort = LockFileAdapter{}
