package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/upload_pdf", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "file is required"})
			return
		}
		defer file.Close()
		if header.Header.Get("Content-Type") != "application/pdf" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "only PDF allowed"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "PDF uploaded and activated"})
	})
	mux.HandleFunc("/qa", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"answer": "echo: " + r.URL.Query().Get("q")})
	})
	mux.HandleFunc("/history", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"history": []map[string]string{
				{"question": "first?", "answer": "one"},
				{"question": "second?", "answer": "two"},
			},
		})
	})
	mux.HandleFunc("/mcq", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"mcqs": "Q: ...\nAnswer: B"})
	})
	mux.HandleFunc("/summary", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "upload a document first"})
	})
	mux.HandleFunc("/download_flashcards", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.3 fake"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestUpload(t *testing.T) {
	srv := newTestServer(t)
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	out, err := run(t, "--server", srv.URL, "upload", path)

	require.NoError(t, err)
	assert.Contains(t, out, "PDF uploaded and activated")
}

func TestUpload_MissingFile(t *testing.T) {
	srv := newTestServer(t)

	_, err := run(t, "--server", srv.URL, "upload", filepath.Join(t.TempDir(), "missing.pdf"))

	assert.Error(t, err)
}

func TestAsk_JoinsArguments(t *testing.T) {
	srv := newTestServer(t)

	out, err := run(t, "--server", srv.URL, "ask", "what", "is", "this?")

	require.NoError(t, err)
	assert.Contains(t, out, "echo: what is this?")
}

func TestHistory_Limit(t *testing.T) {
	srv := newTestServer(t)

	out, err := run(t, "--server", srv.URL, "history", "--limit", "1")

	require.NoError(t, err)
	assert.NotContains(t, out, "first?")
	assert.Contains(t, out, "Q: second?")
}

func TestArtifact_ReadsKindField(t *testing.T) {
	srv := newTestServer(t)

	out, err := run(t, "--server", srv.URL, "artifact", "mcq")

	require.NoError(t, err)
	assert.Contains(t, out, "Answer: B")
}

func TestArtifact_RejectsUnknownKind(t *testing.T) {
	srv := newTestServer(t)

	_, err := run(t, "--server", srv.URL, "artifact", "essay")

	assert.Error(t, err)
}

func TestArtifact_SurfacesServerMessage(t *testing.T) {
	srv := newTestServer(t)

	_, err := run(t, "--server", srv.URL, "artifact", "summary")

	require.Error(t, err)
	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "upload a document first", apiErr.Message)
}

func TestDownload_WritesFile(t *testing.T) {
	srv := newTestServer(t)
	target := filepath.Join(t.TempDir(), "cards.pdf")

	out, err := run(t, "--server", srv.URL, "download", "flashcards", target)

	require.NoError(t, err)
	assert.Contains(t, out, "Saved")
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 fake", string(content))
}

func TestFormatPayload_SortsKeys(t *testing.T) {
	got := formatPayload(map[string]interface{}{"kind": "summary", "document_id": "d1"})

	assert.Equal(t, "document_id=d1 kind=summary", got)
}
