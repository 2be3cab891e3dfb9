package drafting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDraftDocumentCarriesQualityMetadata(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content":       "SEÑOR JUEZ...",
			"quality_score": 0.82,
			"suggestions":   []string{"Precisar la fecha de los hechos."},
		})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "legal-drafter-v1")
	res, err := p.DraftDocument(context.Background(), DraftRequest{
		DocumentType: "tutela",
		Fields:       map[string]string{"hechos": "..."},
	})
	if err != nil {
		t.Fatalf("DraftDocument: %v", err)
	}

	if gotPath != "/api/draft" {
		t.Errorf("path = %q, want /api/draft", gotPath)
	}
	if res.Content == "" {
		t.Error("content missing")
	}
	if res.QualityScore != 0.82 {
		t.Errorf("quality score = %v, want 0.82", res.QualityScore)
	}
	if len(res.Suggestions) != 1 || res.Suggestions[0] != "Precisar la fecha de los hechos." {
		t.Errorf("suggestions = %v", res.Suggestions)
	}
}

func TestDraftDocumentRejectsEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"content": ""})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "legal-drafter-v1")
	if _, err := p.DraftDocument(context.Background(), DraftRequest{DocumentType: "tutela"}); err == nil {
		t.Fatal("expected an error for an empty document")
	}
}
