package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const sourceFileExtension = ".swift"

// ComputeSourceFiles expands globs relative to root. Matched directories
// contribute their immediate source-file children, headers are dropped,
// and any other file type is rejected.
func ComputeSourceFiles(root string, globs []string) ([]string, error) {
	seen := map[string]struct{}{}
	var files []string
	add := func(path string) error {
		switch filepath.Ext(path) {
		case ".h":
			return nil
		case sourceFileExtension:
		default:
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unsupported source file extension %q: %s", filepath.Ext(path), path))
		}
		if _, ok := seen[path]; ok {
			return nil
		}
		seen[path] = struct{}{}
		files = append(files, path)
		return nil
	}

	for _, pattern := range globs {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid source file pattern %q", pattern)).
				WithCause(err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to stat source file").
					WithCause(err)
			}
			if !info.IsDir() {
				if err := add(match); err != nil {
					return nil, err
				}
				continue
			}
			children, err := filepath.Glob(filepath.Join(match, "*"+sourceFileExtension))
			if err != nil {
				return nil, err
			}
			for _, child := range children {
				if err := add(child); err != nil {
					return nil, err
				}
			}
		}
	}
	return files, nil
}
