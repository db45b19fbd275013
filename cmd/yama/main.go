// Command yama serves the GSI list of Japan's major mountains as a JSON API.
// See docs/ARCHITECTURE.md § CLI.
package main

import "github.com/opendata-yamanashi/yama-api/internal/cli"

func main() {
	cli.Execute()
}
