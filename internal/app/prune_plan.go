package app

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type PrunePlan struct {
	Keep   []string
	Delete []string
}

// BuildPrunePlan splits the packages present in a build directory into the
// ones still wanted and the ones to delete. Both lists are sorted and free
// of duplicates.
func BuildPrunePlan(present []string, wanted []string) PrunePlan {
	wantedSet := map[string]struct{}{}
	for _, name := range wanted {
		wantedSet[name] = struct{}{}
	}
	seen := map[string]struct{}{}
	var plan PrunePlan
	for _, name := range present {
		if _, ok := seen[name]; ok || strings.TrimSpace(name) == "" {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := wantedSet[name]; ok {
			plan.Keep = append(plan.Keep, name)
		} else {
			plan.Delete = append(plan.Delete, name)
		}
	}
	sort.Strings(plan.Keep)
	sort.Strings(plan.Delete)
	return plan
}

// presentPackages lists the package names that have a checkout in
// packagesDir or a module in modulesDir.
func presentPackages(packagesDir string, modulesDir string) []string {
	var names []string
	if entries, err := os.ReadDir(packagesDir); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				names = append(names, entry.Name())
			}
		}
	}
	modules, _ := filepath.Glob(filepath.Join(modulesDir, "*.swiftmodule"))
	for _, module := range modules {
		names = append(names, strings.TrimSuffix(filepath.Base(module), ".swiftmodule"))
	}
	return names
}
