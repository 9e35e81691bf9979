package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/delishare/recipe_server/config"
	"github.com/delishare/recipe_server/internal/database"
)

var (
	dryRun         = flag.Bool("dry-run", false, "Report what would be inserted without writing anything")
	skipMigrate    = flag.Bool("skip-migrate", false, "Do not run schema migration")
	skipCategories = flag.Bool("skip-categories", false, "Do not seed the default categories")
)

func main() {
	flag.Parse()

	log.Println("Starting database setup...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 连接数据库
	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// 1. 建表
	if !*skipMigrate && !*dryRun {
		log.Println("\nMigrating schema...")
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate: %v", err)
		}
	}

	// 2. 套餐与分类
	categories := DefaultCategories
	if *skipCategories {
		categories = nil
	}

	report, err := Seed(context.Background(), db, cfg.Subscription.Plans, categories, *dryRun)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	// 输出统计
	log.Println("\n" + strings.Repeat("=", 60))
	log.Println("Setup Summary")
	log.Println(strings.Repeat("=", 60))
	log.Printf("Plans inserted: %v", report.PlansInserted)
	log.Printf("Plans already present: %v", report.PlansExisting)
	log.Printf("Categories inserted: %v", report.CategoriesInserted)
	log.Printf("Categories already present: %v", report.CategoriesExisting)
	if *dryRun {
		log.Println("\nDRY RUN MODE - nothing was written")
		log.Println("   Run without -dry-run to apply")
	} else {
		log.Println("\nSetup completed!")
	}
	log.Println(strings.Repeat("=", 60))
}
