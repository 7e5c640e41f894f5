// Command imagerelay serves the prompt-to-image relay and offers a local
// client for it.
package main

import (
	"os"
)

// @title imagerelay API
// @version 0.1.0
// @description Prompt-to-image relay with provider fallback.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
