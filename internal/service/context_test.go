package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
)

func newTestContextAssemblyService() (*contextAssemblyService, *fakeNodeRepo, *fakeContentRepo) {
	nodeRepo := newFakeNodeRepo()
	contentRepo := newFakeContentRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &contextAssemblyService{nodeRepo: nodeRepo, contentRepo: contentRepo, logger: logger}, nodeRepo, contentRepo
}

func TestContextAssemblyService_GetNodeDetail_IncludesAncestorsAndDescendants(t *testing.T) {
	svc, nodeRepo, contentRepo := newTestContextAssemblyService()
	tree := &treeService{nodeRepo: nodeRepo, docRepo: newFakeDocRepo(), contentRepo: contentRepo, txManager: fakeTxManager{}, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	fn := createFunctionNode(t, tree)

	if err := contentRepo.Set(context.Background(), *fn.DocumentID, []byte(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hello"}]}]}`)); err != nil {
		t.Fatalf("seed content: %v", err)
	}

	detail, err := svc.GetNodeDetail(context.Background(), 1, fn.ID)
	if err != nil {
		t.Fatalf("GetNodeDetail returned error: %v", err)
	}
	if len(detail.Ancestors) != 2 {
		t.Fatalf("expected 2 ancestors (application, page), got %d", len(detail.Ancestors))
	}
	if detail.Ancestors[0].Node.NodeType != "application" {
		t.Errorf("expected root-first order starting with application, got %s", detail.Ancestors[0].Node.NodeType)
	}
	if len(detail.Nodes) != 1 {
		t.Fatalf("expected 1 node (the function itself, no children), got %d", len(detail.Nodes))
	}
	if detail.Nodes[0].DocumentText == "" {
		t.Error("expected non-empty rendered document text for a populated document")
	}
}

func TestContextAssemblyService_GetNodeDetail_EmptyDocumentHasNoText(t *testing.T) {
	svc, nodeRepo, contentRepo := newTestContextAssemblyService()
	tree := &treeService{nodeRepo: nodeRepo, docRepo: newFakeDocRepo(), contentRepo: contentRepo, txManager: fakeTxManager{}, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	fn := createFunctionNode(t, tree)

	detail, err := svc.GetNodeDetail(context.Background(), 1, fn.ID)
	if err != nil {
		t.Fatalf("GetNodeDetail returned error: %v", err)
	}
	if detail.Nodes[0].DocumentText != "" {
		t.Errorf("expected no rendered text for an empty document, got %q", detail.Nodes[0].DocumentText)
	}
}

func TestContextAssemblyService_GetNodeDetail_WireShape(t *testing.T) {
	svc, nodeRepo, contentRepo := newTestContextAssemblyService()
	tree := &treeService{nodeRepo: nodeRepo, docRepo: newFakeDocRepo(), contentRepo: contentRepo, txManager: fakeTxManager{}, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	fn := createFunctionNode(t, tree)

	detail, err := svc.GetNodeDetail(context.Background(), 1, fn.ID)
	if err != nil {
		t.Fatalf("GetNodeDetail returned error: %v", err)
	}

	raw, err := json.Marshal(detail)
	if err != nil {
		t.Fatalf("marshal detail: %v", err)
	}

	var wire map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal wire shape: %v", err)
	}

	if _, ok := wire["context"]; !ok {
		t.Error("expected top-level \"context\" key")
	}
	if _, ok := wire["content_to_develop"]; !ok {
		t.Error("expected top-level \"content_to_develop\" key")
	}
	if _, ok := wire["Application"]; ok {
		t.Error("Application should not be part of the wire shape")
	}
	if _, ok := wire["Ancestors"]; ok {
		t.Error("Ancestors should be renamed to \"context\" on the wire")
	}

	var contentToDevelop []map[string]json.RawMessage
	if err := json.Unmarshal(wire["content_to_develop"], &contentToDevelop); err != nil {
		t.Fatalf("unmarshal content_to_develop: %v", err)
	}
	if len(contentToDevelop) != 1 {
		t.Fatalf("expected 1 content_to_develop entry, got %d", len(contentToDevelop))
	}
	entry := contentToDevelop[0]
	for _, key := range []string{"node", "document", "document_text"} {
		if _, ok := entry[key]; !ok {
			t.Errorf("expected entry key %q, got keys %v", key, entry)
		}
	}
}
