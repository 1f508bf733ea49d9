package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/pitchpoa/internal/client/cli"
	"github.com/dmitrijs2005/pitchpoa/internal/client/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	cli.NewApp(cfg).Run(context.Background())
}
