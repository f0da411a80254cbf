package lookup

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveServer answers the resolve endpoint from a table keyed by
// "first last".
func resolveServer(t *testing.T, responses map[string]resolveResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, resolvePath, r.URL.Path)
		require.Equal(t, "skip", r.URL.Query().Get("similarity_checks"))
		key := r.URL.Query().Get("first_name") + " " + r.URL.Query().Get("last_name")
		body, ok := responses[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
}

func enrichedResponse(url string) resolveResponse {
	score := 0.95
	return resolveResponse{
		URL:                 url,
		NameSimilarityScore: &score,
		Profile: resolvedProfile{
			PublicIdentifier: "ada-lovelace",
			FirstName:        "Ada",
			LastName:         "Lovelace",
			Occupation:       "Senior Economist at World Bank",
			Experiences: []Experience{
				{Company: "The World Bank", Title: "Senior Economist"},
				{Company: "IMF", Title: "Analyst"},
				{Title: "Consultant"},
			},
			Education: []EducationEntry{
				{School: "MIT", DegreeName: "PhD Economics"},
				{School: "Cambridge"},
			},
			Languages:   []string{"English", "French"},
			Connections: 500,
		},
	}
}

func testClient(serverURL string) *Client {
	return NewClient(ClientOptions{BaseURL: serverURL, APIKey: "test-key"})
}

func TestResolveFlattensProfile(t *testing.T) {
	srv := resolveServer(t, map[string]resolveResponse{
		"Ada Lovelace": enrichedResponse("https://www.linkedin.com/in/ada-lovelace"),
	})
	defer srv.Close()

	got, err := testClient(srv.URL).Resolve(context.Background(), "Ada", "Lovelace", "Lovelace, Ada")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Lovelace, Ada", got.FullName)
	assert.Equal(t, "https://www.linkedin.com/in/ada-lovelace", got.LinkedInURL)
	assert.Equal(t, "ada-lovelace", got.PublicIdentifier)
	assert.Equal(t, []string{"PhD Economics"}, got.EducationTitles)
	assert.Equal(t, []Experience{{Company: "IMF", Title: "Analyst"}}, got.NonEmployerExperiences,
		"employer and company-less entries are filtered out")
}

func TestResolveNotFoundIsNotAnError(t *testing.T) {
	srv := resolveServer(t, nil)
	defer srv.Close()

	got, err := testClient(srv.URL).Resolve(context.Background(), "Ada", "Lovelace", "Lovelace, Ada")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRunnerFallsBackThroughVariations(t *testing.T) {
	srv := resolveServer(t, map[string]resolveResponse{
		"Grace Hopper": enrichedResponse("https://www.linkedin.com/in/grace-hopper"),
	})
	defer srv.Close()

	results, err := OpenResults(filepath.Join(t.TempDir(), "linkedin_results.csv"))
	require.NoError(t, err)

	runner := NewRunner(testClient(srv.URL), results, slog.New(slog.NewTextHandler(io.Discard, nil)))
	sum, err := runner.Run(context.Background(), []string{"Hopper, Grace Brewster"})
	require.NoError(t, err)

	assert.Equal(t, RunSummary{Processed: 1, Resolved: 1}, sum)
	assert.True(t, results.Has("Hopper, Grace Brewster"))
}

func TestRunnerRecordsUnmatchedNames(t *testing.T) {
	srv := resolveServer(t, nil)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "linkedin_results.csv")
	results, err := OpenResults(path)
	require.NoError(t, err)

	runner := NewRunner(testClient(srv.URL), results, slog.New(slog.NewTextHandler(io.Discard, nil)))
	sum, err := runner.Run(context.Background(), []string{"Lovelace, Ada"})
	require.NoError(t, err)
	assert.Equal(t, RunSummary{Processed: 1, Unmatched: 1}, sum)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, resultColumns, rows[0])
	assert.Equal(t, "Lovelace, Ada", rows[1][0])
	assert.Empty(t, rows[1][1], "unmatched names get a blank url placeholder row")
}

func TestRunnerResumesFromExistingResults(t *testing.T) {
	srv := resolveServer(t, map[string]resolveResponse{
		"Ada Lovelace": enrichedResponse("https://www.linkedin.com/in/ada-lovelace"),
	})
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "linkedin_results.csv")

	results, err := OpenResults(path)
	require.NoError(t, err)
	runner := NewRunner(testClient(srv.URL), results, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err = runner.Run(context.Background(), []string{"Lovelace, Ada"})
	require.NoError(t, err)

	reopened, err := OpenResults(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Len())

	runner = NewRunner(testClient(srv.URL), reopened, slog.New(slog.NewTextHandler(io.Discard, nil)))
	sum, err := runner.Run(context.Background(), []string{"Lovelace, Ada"})
	require.NoError(t, err)
	assert.Equal(t, RunSummary{Processed: 1, Skipped: 1}, sum)
	assert.Equal(t, 1, reopened.Len())
}
