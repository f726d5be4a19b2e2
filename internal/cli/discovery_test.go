package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsMapFile(t *testing.T) {
	cases := map[string]bool{
		"Map001.json":        true,
		"Map123.json":        true,
		"MapInfos.json":      false,
		"CommonEvents.json":  false,
		"Actors.json":        false,
		"dir/Map042.json":    true,
		"dir/MapInfos.json":  false,
	}
	for path, want := range cases {
		if got := IsMapFile(path); got != want {
			t.Errorf("IsMapFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestIsCommonEventsFile(t *testing.T) {
	if !IsCommonEventsFile("project/CommonEvents.json") {
		t.Error("expected CommonEvents.json to match")
	}
	if IsCommonEventsFile("project/Map001.json") {
		t.Error("expected Map001.json not to match")
	}
}

func TestFindMapFiles(t *testing.T) {
	dir := t.TempDir()
	names := []string{"Map001.json", "Map010.json", "Map002.json", "MapInfos.json", "CommonEvents.json"}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}

	maps, err := FindMapFiles(dir)
	if err != nil {
		t.Fatalf("FindMapFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "Map001.json"),
		filepath.Join(dir, "Map002.json"),
		filepath.Join(dir, "Map010.json"),
	}
	if len(maps) != len(want) {
		t.Fatalf("maps = %v, want %v", maps, want)
	}
	for i := range want {
		if maps[i] != want[i] {
			t.Errorf("maps[%d] = %q, want %q", i, maps[i], want[i])
		}
	}
}

func TestFindMapFilesMissingDir(t *testing.T) {
	if _, err := FindMapFiles(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
