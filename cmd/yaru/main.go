package main

import (
	"log"
	"os"

	"github.com/kutbudev/yaru/internal/cli/commands"
)

// Version will be set during build with ldflags
var Version = "0.1.0"

func main() {
	log.SetFlags(0)
	app := commands.NewApp(Version)
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
