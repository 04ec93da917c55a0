package ports

import "conche/internal/types"

type LockPort interface {
	WriteLock(path string, entries []types.LockEntry) error
	ReadLock(path string) ([]types.LockEntry, error)
}
