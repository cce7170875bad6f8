package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDocumentAnalyzerPostsMultipartFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/analyze" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file field: %v", err)
			http.Error(w, "bad", http.StatusBadRequest)
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		if header.Filename != "estimate.pdf" || string(body) != "%PDF-fake" {
			t.Errorf("upload = %s %q", header.Filename, body)
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"customer":{"name":"Dana"},"vehicle":{"vin":"2HGFC2F59KH512345"},"items":[{"type":"Replace","desc":"Bumper","partNum":"HO1000"}],"notes":"rush"}`)
	}))
	defer srv.Close()

	analyzer := NewDocumentAnalyzer(srv.URL+"/", srv.Client())
	result, err := analyzer.Analyze(context.Background(), "estimate.pdf", strings.NewReader("%PDF-fake"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Customer == nil || result.Customer.Name != "Dana" {
		t.Errorf("customer = %+v", result.Customer)
	}
	if len(result.Items) != 1 || result.Items[0].PartNum != "HO1000" {
		t.Errorf("items = %+v", result.Items)
	}
	if result.Notes != "rush" {
		t.Errorf("notes = %q", result.Notes)
	}
}

func TestDocumentAnalyzerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	analyzer := NewDocumentAnalyzer(srv.URL, srv.Client())
	if _, err := analyzer.Analyze(context.Background(), "x.pdf", strings.NewReader("x")); err == nil {
		t.Error("expected error for 500 response")
	}
}
