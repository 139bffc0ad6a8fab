package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"dipstudio/internal/domain"
	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/services"
)

func newTestDocumentService() (*documentService, *treeService) {
	nodeRepo := newFakeNodeRepo()
	docRepo := newFakeDocRepo()
	contentRepo := newFakeContentRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tree := &treeService{
		nodeRepo:    nodeRepo,
		docRepo:     docRepo,
		contentRepo: contentRepo,
		txManager:   fakeTxManager{},
		logger:      logger,
	}
	doc := &documentService{
		nodeRepo:    nodeRepo,
		docRepo:     docRepo,
		contentRepo: contentRepo,
		logger:      logger,
	}
	return doc, tree
}

func createFunctionNode(t *testing.T, tree *treeService) *models.ProjectNode {
	t.Helper()
	ctx := context.Background()
	app, err := tree.CreateNode(ctx, &services.CreateNodeRequest{
		ProjectID: 1, NodeType: models.NodeTypeApplication, Name: "App", CreatorID: "u1", CreatorName: "U",
	})
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	page, err := tree.CreateNode(ctx, &services.CreateNodeRequest{
		ProjectID: 1, ParentID: &app.ID, NodeType: models.NodeTypePage, Name: "Page", CreatorID: "u1", CreatorName: "U",
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	fn, err := tree.CreateNode(ctx, &services.CreateNodeRequest{
		ProjectID: 1, ParentID: &page.ID, NodeType: models.NodeTypeFunction, Name: "Fn", CreatorID: "u1", CreatorName: "U",
	})
	if err != nil {
		t.Fatalf("create function: %v", err)
	}
	return fn
}

func TestDocumentService_GetContent_RejectsNonFunctionNode(t *testing.T) {
	doc, tree := newTestDocumentService()
	ctx := context.Background()

	app, err := tree.CreateNode(ctx, &services.CreateNodeRequest{
		ProjectID: 1, NodeType: models.NodeTypeApplication, Name: "App", CreatorID: "u1", CreatorName: "U",
	})
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	_, err = doc.GetContent(ctx, 1, app.ID)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for non-function node, got %v", err)
	}
}

func TestDocumentService_SetContent_TouchesEditor(t *testing.T) {
	doc, tree := newTestDocumentService()
	ctx := context.Background()
	fn := createFunctionNode(t, tree)

	result, err := doc.SetContent(ctx, 1, fn.ID, []byte(`{"type":"doc","content":[]}`), "u2", "User Two")
	if err != nil {
		t.Fatalf("SetContent returned error: %v", err)
	}
	if string(result) != `{"type":"doc","content":[]}` {
		t.Errorf("unexpected content echoed back: %s", result)
	}

	stored, err := doc.docRepo.GetByFunctionNodeID(ctx, fn.ID)
	if err != nil {
		t.Fatalf("get stored doc: %v", err)
	}
	if stored.EditorID != "u2" || stored.EditorName != "User Two" {
		t.Errorf("expected editor to be touched, got %+v", stored)
	}
}

func TestDocumentService_PatchContent_AppliesJSONPatch(t *testing.T) {
	doc, tree := newTestDocumentService()
	ctx := context.Background()
	fn := createFunctionNode(t, tree)

	if _, err := doc.SetContent(ctx, 1, fn.ID, []byte(`{"title":"old"}`), "u1", "U"); err != nil {
		t.Fatalf("SetContent: %v", err)
	}

	patch := []byte(`[{"op":"replace","path":"/title","value":"new"}]`)
	patched, err := doc.PatchContent(ctx, 1, fn.ID, patch, "u2", "User Two")
	if err != nil {
		t.Fatalf("PatchContent returned error: %v", err)
	}
	if string(patched) != `{"title":"new"}` {
		t.Errorf("expected patched content {\"title\":\"new\"}, got %s", patched)
	}
}

func TestDocumentService_GetContent_NotFoundNode(t *testing.T) {
	doc, _ := newTestDocumentService()

	_, err := doc.GetContent(context.Background(), 1, "does-not-exist")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
