package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsMapFile reports whether path names a MapNNN.json file (MapInfos.json
// excluded). File discovery is a shell-level convenience, not something the
// engine core assumes about its caller's layout.
func IsMapFile(path string) bool {
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "Map") || !strings.HasSuffix(name, ".json") {
		return false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, "Map"), ".json")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsCommonEventsFile reports whether path names the CommonEvents.json file.
func IsCommonEventsFile(path string) bool {
	return filepath.Base(path) == "CommonEvents.json"
}

// FindMapFiles returns every MapNNN.json file directly inside dir, sorted
// by name for a stable batch-processing order.
func FindMapFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var maps []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsMapFile(entry.Name()) {
			maps = append(maps, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(maps)
	return maps, nil
}
