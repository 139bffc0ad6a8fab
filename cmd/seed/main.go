package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"dipstudio/internal/config"
	"dipstudio/internal/repository/postgres"
)

// nodeTypeFixture mirrors one entry of scripts/node_types.yaml.
type nodeTypeFixture struct {
	Name              string  `yaml:"name"`
	AllowedParentType *string `yaml:"allowed_parent_type"`
}

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema and the node_types reference table")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Environment == "prod" && *dropTables {
		log.Fatal("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		logger.Info("dropping tables", "prefix", cfg.TablePrefix)
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("failed to drop tables: %v", err)
		}
	}

	logger.Info("ensuring schema", "prefix", cfg.TablePrefix)
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("failed to run schema: %v", err)
	}

	logger.Info("seeding node_types reference table")
	if err := seedNodeTypes(ctx, pool, tables, "scripts/node_types.yaml"); err != nil {
		log.Fatalf("failed to seed node types: %v", err)
	}

	if *schemaOnly {
		logger.Info("schema-only mode complete")
		return
	}

	logger.Info("seed complete")
}

func seedNodeTypes(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, fixturePath string) error {
	raw, err := os.ReadFile(fixturePath)
	if err != nil {
		return fmt.Errorf("read node type fixture: %w", err)
	}

	var fixtures []nodeTypeFixture
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return fmt.Errorf("parse node type fixture: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (name, allowed_parent_type)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET allowed_parent_type = EXCLUDED.allowed_parent_type
	`, tables.NodeTypes)

	for _, f := range fixtures {
		if _, err := pool.Exec(ctx, query, f.Name, f.AllowedParentType); err != nil {
			return fmt.Errorf("seed node type %q: %w", f.Name, err)
		}
	}
	return nil
}

func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			name TEXT PRIMARY KEY,
			allowed_parent_type TEXT REFERENCES %s(name)
		)`, tables.NodeTypes, tables.NodeTypes),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			creator_id TEXT NOT NULL,
			creator_name TEXT NOT NULL,
			editor_id TEXT NOT NULL,
			editor_name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			edited_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, tables.Projects),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			project_id BIGINT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			parent_id TEXT REFERENCES %s(id) ON DELETE CASCADE,
			node_type TEXT NOT NULL REFERENCES %s(name),
			name TEXT NOT NULL,
			description TEXT,
			path TEXT NOT NULL,
			sort INTEGER NOT NULL DEFAULT 0,
			status INTEGER NOT NULL DEFAULT 1,
			document_id BIGINT,
			creator_id TEXT NOT NULL,
			creator_name TEXT NOT NULL,
			editor_id TEXT NOT NULL,
			editor_name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			edited_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, tables.Nodes, tables.Projects, tables.Nodes, tables.NodeTypes),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			function_node_id TEXT NOT NULL UNIQUE REFERENCES %s(id) ON DELETE CASCADE,
			creator_id TEXT NOT NULL,
			creator_name TEXT NOT NULL,
			editor_id TEXT NOT NULL,
			editor_name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			edited_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, tables.FunctionDocuments, tables.Nodes),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			document_id BIGINT PRIMARY KEY REFERENCES %s(id) ON DELETE CASCADE,
			content JSONB NOT NULL DEFAULT '{}'::jsonb,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, tables.DocumentContent, tables.FunctionDocuments),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			project_id BIGINT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			term TEXT NOT NULL,
			definition TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(project_id, term)
		)`, tables.Dictionary, tables.Projects),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%snodes_project_path ON %s(project_id, path)`, tablePrefix, tables.Nodes),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%snodes_project_parent ON %s(project_id, parent_id)`, tablePrefix, tables.Nodes),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sdictionary_project ON %s(project_id)`, tablePrefix, tables.Dictionary),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.DocumentContent,
		tables.FunctionDocuments,
		tables.Dictionary,
		tables.Nodes,
		tables.Projects,
		tables.NodeTypes,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
		log.Printf("dropped %s", table)
	}
	return nil
}
