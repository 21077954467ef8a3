package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/revu/internal/output"
)

// fakeBackendServer serves the three API endpoints with canned data.
func fakeBackendServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("file")
		require.NoError(t, err)
		_, _ = w.Write([]byte(`{"report_id": "rep-xyz"}`))
	})
	mux.HandleFunc("GET /api/report/rep-xyz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-fake"))
	})
	mux.HandleFunc("GET /api/review/rep-xyz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"titles": ["Security", "Style"],
			"code_comments": [{"title": "Security", "start_string_number": 1, "end_string_number": 2, "filepath": "main.go", "comment": "unused variable", "suggestion": null, "lines": [{"order": 1, "text": "x"}]}],
			"project_comments": [{"title": "Style", "comment": "naming"}]
		}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// captureUI routes command output into buffers.
func captureUI(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	ui = &output.UI{Out: out, ErrOut: errOut}
	return out, errOut
}

func TestSubmitRun_FullFlow(t *testing.T) {
	testEnv(t)
	srv := fakeBackendServer(t)
	viper.Set("server.base_url", srv.URL)
	out, errOut := captureUI(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "project.zip")
	require.NoError(t, os.WriteFile(src, []byte("pk"), 0644))

	submitOutputDir = dir
	submitNoDownload = false
	t.Cleanup(func() { submitOutputDir = "" })

	require.NoError(t, submitRun(context.Background(), src))

	result := out.String()
	assert.Contains(t, result, "rep-xyz")
	assert.Contains(t, result, "Security")
	assert.Contains(t, result, "main.go:1-2")
	assert.Contains(t, result, "unused variable")
	assert.Contains(t, result, "naming")
	assert.Contains(t, result, "2 comments total")
	assert.Empty(t, errOut.String())

	// PDF saved under the original name with a .pdf extension.
	_, err := os.Stat(filepath.Join(dir, "project.pdf"))
	assert.NoError(t, err)
}

func TestSubmitRun_UnsupportedType(t *testing.T) {
	testEnv(t)
	captureUI(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(src, []byte("png"), 0644))

	err := submitRun(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestReportRun_DeepLink(t *testing.T) {
	testEnv(t)
	srv := fakeBackendServer(t)
	viper.Set("server.base_url", srv.URL)
	out, _ := captureUI(t)

	reportOutputDir = t.TempDir()
	reportNoDownload = true
	t.Cleanup(func() {
		reportOutputDir = ""
		reportNoDownload = false
	})

	require.NoError(t, reportRun(context.Background(), "rep-xyz"))

	result := out.String()
	assert.Contains(t, result, "Security")
	assert.Contains(t, result, "2 comments total")
}

func TestReportRun_TabOrderAndBarChart(t *testing.T) {
	testEnv(t)
	srv := fakeBackendServer(t)
	viper.Set("server.base_url", srv.URL)
	out, _ := captureUI(t)

	reportChart = "bar"
	reportOutputDir = t.TempDir()
	reportNoDownload = true
	t.Cleanup(func() {
		reportChart = ""
		reportOutputDir = ""
		reportNoDownload = false
	})

	require.NoError(t, reportRun(context.Background(), "rep-xyz"))

	// Document tab renders before the review tab, and the chart flag picks
	// the bar rendering.
	result := out.String()
	docAt := strings.Index(result, "Report PDF ready")
	revAt := strings.Index(result, "Security")
	require.GreaterOrEqual(t, docAt, 0)
	require.GreaterOrEqual(t, revAt, 0)
	assert.Less(t, docAt, revAt)
	assert.Contains(t, result, "█")
	assert.NotContains(t, strings.ToUpper(result), "SHARE")
}

func TestReportRun_ReviewFailureStillShowsDocument(t *testing.T) {
	testEnv(t)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/report/rep-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-fake"))
	})
	mux.HandleFunc("GET /api/review/rep-1", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not generated yet", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	viper.Set("server.base_url", srv.URL)
	out, errOut := captureUI(t)

	reportOutputDir = t.TempDir()
	reportNoDownload = true
	t.Cleanup(func() {
		reportOutputDir = ""
		reportNoDownload = false
	})

	// One failed resource is not fatal as long as the other displayed.
	require.NoError(t, reportRun(context.Background(), "rep-1"))
	assert.Contains(t, out.String(), "Report PDF ready")
	assert.Contains(t, errOut.String(), "review fetch failed")
}

func TestDownloadRun(t *testing.T) {
	testEnv(t)
	srv := fakeBackendServer(t)
	viper.Set("server.base_url", srv.URL)
	out, _ := captureUI(t)

	dir := t.TempDir()
	downloadOutputDir = dir
	t.Cleanup(func() { downloadOutputDir = "" })

	require.NoError(t, downloadRun(context.Background(), "rep-xyz"))
	assert.Contains(t, out.String(), "rep-xyz.pdf")

	data, err := os.ReadFile(filepath.Join(dir, "rep-xyz.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(data))
}
