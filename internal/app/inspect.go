package app

import (
	"path/filepath"
	"strings"

	"conche/internal/types"
)

// Inspect reads back a lock file written by Resolve.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.LockPath)
	if path == "" {
		path = filepath.Join(s.Config.WorkDir, types.LockFileName)
	}
	entries, err := s.Lock.ReadLock(path)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{Entries: entries}, nil
}
