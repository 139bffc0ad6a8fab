package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"dipstudio/internal/config"
	"dipstudio/internal/handler"
	"dipstudio/internal/repository/postgres"
	"dipstudio/internal/service"
	"dipstudio/internal/service/bulkimport"
	"dipstudio/internal/service/converter"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logOutput := io.Writer(os.Stdout)
	if cfg.Environment == "dev" {
		logFile, err := config.SetupLogFile("logs", 5)
		if err != nil {
			log.Printf("warning: could not set up log file: %v", err)
		} else {
			defer logFile.Close()
			logOutput = io.MultiWriter(os.Stdout, logFile)
		}
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("server starting", "environment", cfg.Environment, "port", cfg.Port, "table_prefix", cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}

	projectRepo := postgres.NewProjectRepository(repoConfig)
	nodeRepo := postgres.NewNodeRepository(repoConfig)
	dictionaryRepo := postgres.NewDictionaryRepository(repoConfig)
	docRepo := postgres.NewFunctionDocumentRepository(repoConfig)
	contentRepo := postgres.NewDocumentContentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	projectService := service.NewProjectService(projectRepo, nodeRepo, dictionaryRepo, docRepo, contentRepo, txManager, logger)
	treeService := service.NewTreeService(nodeRepo, docRepo, contentRepo, txManager, logger)
	dictionaryService := service.NewDictionaryService(dictionaryRepo, logger)
	documentService := service.NewDocumentService(nodeRepo, docRepo, contentRepo, logger)
	contextService := service.NewContextAssemblyService(nodeRepo, contentRepo, logger)
	converterRegistry := converter.NewRegistry()
	importService := bulkimport.New(nodeRepo, docRepo, contentRepo, txManager, treeService, documentService, converterRegistry, logger)

	projectHandler := handler.NewProjectHandler(projectService, logger)
	treeHandler := handler.NewTreeHandler(treeService, logger)
	dictionaryHandler := handler.NewDictionaryHandler(dictionaryService, logger)
	documentHandler := handler.NewDocumentHandler(documentService, logger)
	contextHandler := handler.NewContextHandler(contextService, logger)
	importHandler := handler.NewImportHandler(importService, logger)

	logger.Info("services initialized")

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", projectHandler.HealthCheck)

	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)

	mux.HandleFunc("GET /api/projects/{projectId}/tree", treeHandler.GetTree)
	mux.HandleFunc("POST /api/projects/{projectId}/nodes", treeHandler.CreateNode)
	mux.HandleFunc("GET /api/projects/{projectId}/nodes/{id}", treeHandler.GetNode)
	mux.HandleFunc("PATCH /api/projects/{projectId}/nodes/{id}", treeHandler.UpdateNode)
	mux.HandleFunc("POST /api/projects/{projectId}/nodes/{id}/move", treeHandler.MoveNode)
	mux.HandleFunc("DELETE /api/projects/{projectId}/nodes/{id}", treeHandler.DeleteNode)

	mux.HandleFunc("GET /api/projects/{projectId}/nodes/{id}/document", documentHandler.GetContent)
	mux.HandleFunc("PUT /api/projects/{projectId}/nodes/{id}/document", documentHandler.SetContent)
	mux.HandleFunc("PATCH /api/projects/{projectId}/nodes/{id}/document", documentHandler.PatchContent)

	mux.HandleFunc("GET /api/projects/{projectId}/nodes/{id}/context", contextHandler.GetNodeDetail)
	mux.HandleFunc("GET /api/projects/{projectId}/applications/{id}/context", contextHandler.GetApplicationDetail)
	mux.HandleFunc("POST /api/projects/{projectId}/applications/{id}/import", importHandler.Import)

	mux.HandleFunc("POST /api/projects/{projectId}/dictionary", dictionaryHandler.CreateEntry)
	mux.HandleFunc("GET /api/projects/{projectId}/dictionary", dictionaryHandler.ListEntries)
	mux.HandleFunc("PATCH /api/projects/{projectId}/dictionary/{id}", dictionaryHandler.UpdateEntry)
	mux.HandleFunc("DELETE /api/projects/{projectId}/dictionary/{id}", dictionaryHandler.DeleteEntry)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-Id", "X-User-Name"},
		AllowCredentials: true,
	})

	var root http.Handler = mux
	root = handler.WithCaller(root)
	root = corsMiddleware.Handler(root)

	logger.Info("listening", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, root); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
