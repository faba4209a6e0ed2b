package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"worksheet-gateway/internal/models"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, 5*time.Second), srv
}

func TestGenerateHitsGenerateEndpoint(t *testing.T) {
	var gotPath string
	var gotCfg models.GenerationConfig
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotCfg); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode([]models.Problem{
			{ID: "p1", Text: "3 + 4", Answer: "7", Kind: models.KindArithmetic},
		})
	})
	defer srv.Close()

	problems, err := c.Generate(context.Background(), models.GenerationConfig{
		Grade: 1, Operations: []string{models.OpAdd}, Count: 5,
		MinValue: 0, MaxValue: 10, Language: models.LangEnglish,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/generate" {
		t.Errorf("expected /api/generate, got %s", gotPath)
	}
	if gotCfg.Grade != 1 || gotCfg.Count != 5 || gotCfg.Language != "en" {
		t.Errorf("config did not survive the wire: %+v", gotCfg)
	}
	if len(problems) != 1 || problems[0].Answer != "7" {
		t.Errorf("unexpected problems: %+v", problems)
	}
}

func TestNonSuccessStatusSurfacesBodyText(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "count exceeds pool size", http.StatusUnprocessableEntity)
	})
	defer srv.Close()

	_, err := c.Assemble(context.Background(), models.AssemblePayload{
		Problems: []models.Problem{{ID: "p1"}}, Count: 99, Mode: models.ModeBalanced,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "count exceeds pool size") {
		t.Errorf("error must carry the backend body text, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error must carry the status code, got %q", err.Error())
	}
}

func TestUploadSendsMultipartFileField(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" {
			t.Errorf("expected /api/upload, got %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form field 'file' missing: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "bank.json" {
			t.Errorf("expected filename bank.json, got %s", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != `[{"id":"q1"}]` {
			t.Errorf("file content did not survive: %s", data)
		}
		json.NewEncoder(w).Encode([]models.Problem{{ID: "q1", Kind: models.KindWord}})
	})
	defer srv.Close()

	problems, err := c.Upload(context.Background(), "bank.json", strings.NewReader(`[{"id":"q1"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(problems) != 1 || problems[0].Kind != models.KindWord {
		t.Errorf("unexpected problems: %+v", problems)
	}
}

func TestEvaluateRoundTrip(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/evaluate" {
			t.Errorf("expected /api/evaluate, got %s", r.URL.Path)
		}
		var problems []models.Problem
		if err := json.NewDecoder(r.Body).Decode(&problems); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(models.Evaluation{
			AverageDifficulty: 0.61,
			Buckets:           map[string]int{"easy": 1, "hard": 2},
			Kinds:             map[string]int{models.KindArithmetic: 3},
		})
	})
	defer srv.Close()

	eval, err := c.Evaluate(context.Background(), []models.Problem{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.AverageDifficulty != 0.61 || eval.Buckets["hard"] != 2 {
		t.Errorf("unexpected evaluation: %+v", eval)
	}
}

func TestExportKindInPath(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/export/answers" {
			t.Errorf("expected /api/export/answers, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	})
	defer srv.Close()

	data, err := c.Export(context.Background(), models.GenerationConfig{
		Grade: 1, Operations: []string{models.OpMul}, Count: 5,
		MinValue: 0, MaxValue: 10, Language: models.LangVietnamese,
	}, models.ExportAnswers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("expected raw PDF bytes, got %q", data)
	}
}
