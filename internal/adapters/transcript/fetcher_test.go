package transcript

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTranscript = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.5">Hello world</text>
  <text start="2.5" dur="3.0">this is &amp;quot;quoted&amp;quot; text</text>
  <text start="5.5" dur="1.0">  </text>
  <text start="6.5" dur="2.0">goodbye</text>
</transcript>`

func TestFetchTranscript(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		w.Write([]byte(sampleTranscript))
	}))
	defer srv.Close()

	fetcher := NewYouTubeFetcherWithBaseURL(srv.URL)

	text, err := fetcher.Fetch(context.Background(), "abc123", "en")
	require.NoError(t, err)
	assert.Contains(t, text, "Hello world")
	assert.Contains(t, text, "goodbye")
	assert.NotContains(t, text, "&amp;")
	assert.Equal(t, "/api/timedtext?lang=en&v=abc123", gotPath)
}

func TestFetchDefaultsToEnglish(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		w.Write([]byte(sampleTranscript))
	}))
	defer srv.Close()

	fetcher := NewYouTubeFetcherWithBaseURL(srv.URL)
	_, err := fetcher.Fetch(context.Background(), "abc123", "")
	require.NoError(t, err)
	assert.Contains(t, gotPath, "lang=en")
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(""))
	}))
	defer srv.Close()

	fetcher := NewYouTubeFetcherWithBaseURL(srv.URL)
	_, err := fetcher.Fetch(context.Background(), "abc123", "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transcript available")
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	fetcher := NewYouTubeFetcherWithBaseURL(srv.URL)
	_, err := fetcher.Fetch(context.Background(), "abc123", "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
