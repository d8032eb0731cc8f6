package main

import (
	"log"

	"github.com/MrSnakeDoc/statuary/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ statuary failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ statuary stopped with error: %v", err)
	}
}
