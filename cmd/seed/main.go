package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/JaimeStill/paginalab/internal/api"
	"github.com/JaimeStill/paginalab/internal/config"
	"github.com/JaimeStill/paginalab/internal/infrastructure"
	"github.com/JaimeStill/paginalab/pkg/database"
)

func main() {
	var (
		all   = flag.Bool("all", false, "Run all seeders")
		name  = flag.String("seeder", "", "Run a single seeder by name")
		file  = flag.String("file", "", "External seed file for -seeder (overrides embedded)")
		force = flag.Bool("force", false, "Seed even when records already exist")
		list  = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	if !*all && *name == "" {
		fmt.Println("usage: seed [-all | -seeder <name> [-file <path>]] [-force] [-list]")
		flag.PrintDefaults()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if cfg.Database.Driver == database.DriverMemory {
		log.Fatal("seeding the memory driver has no lasting effect; set DATABASE_DRIVER")
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatalf("infrastructure init failed: %v", err)
	}
	if err := infra.Start(); err != nil {
		log.Fatalf("infrastructure start failed: %v", err)
	}
	defer infra.Lifecycle.Shutdown(cfg.Server.ShutdownTimeoutDuration())

	domain, err := api.NewDomain(api.NewRuntime(cfg, infra))
	if err != nil {
		log.Fatalf("domain init failed: %v", err)
	}

	ctx := context.Background()

	if *all {
		for _, s := range listSeeders() {
			if err := runSeeder(ctx, domain, s, *force); err != nil {
				log.Fatalf("seeding failed: %v", err)
			}
		}
		fmt.Println("all seeders completed successfully")
		return
	}

	s, ok := getSeeder(*name)
	if !ok {
		log.Fatalf("seeder not found: %s", *name)
	}
	if *file != "" {
		s.SetFile(*file)
	}
	if err := runSeeder(ctx, domain, s, *force); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
}
