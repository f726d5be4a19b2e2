// Command rgsstrans packs, unpacks, and lists RGSS archives, and extracts
// or injects translatable text in RPG Maker MV/MZ project data.
package main

import (
	"os"

	"rgsstrans/internal/cli"
)

const version = "v0.1"

func main() {
	os.Exit(cli.Execute(version))
}
