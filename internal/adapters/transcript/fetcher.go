// Package transcript fetches video captions from YouTube's timedtext
// endpoint.
package transcript

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public timedtext endpoint.
const DefaultBaseURL = "https://www.youtube.com"

// Fetcher retrieves the caption text of a video.
type Fetcher interface {
	Fetch(ctx context.Context, videoID, language string) (string, error)
}

// YouTubeFetcher is a Fetcher backed by the timedtext API.
type YouTubeFetcher struct {
	client  *http.Client
	baseURL string
}

// NewYouTubeFetcher creates a fetcher against the public endpoint.
func NewYouTubeFetcher() *YouTubeFetcher {
	return NewYouTubeFetcherWithBaseURL(DefaultBaseURL)
}

// NewYouTubeFetcherWithBaseURL creates a fetcher against a custom
// endpoint, used by tests.
func NewYouTubeFetcherWithBaseURL(baseURL string) *YouTubeFetcher {
	return &YouTubeFetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type timedText struct {
	XMLName xml.Name       `xml:"transcript"`
	Lines   []timedTextRow `xml:"text"`
}

type timedTextRow struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

// Fetch downloads and flattens the captions of one video. An empty
// language defaults to English.
func (f *YouTubeFetcher) Fetch(ctx context.Context, videoID, language string) (string, error) {
	if language == "" {
		language = "en"
	}

	endpoint := fmt.Sprintf("%s/api/timedtext?lang=%s&v=%s",
		f.baseURL, url.QueryEscape(language), url.QueryEscape(videoID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcript request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading transcript: %w", err)
	}

	// The endpoint answers 200 with an empty body when no captions
	// exist for the requested language.
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", fmt.Errorf("no transcript available for video %s in language %s", videoID, language)
	}

	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("parsing transcript: %w", err)
	}

	lines := make([]string, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text != "" {
			lines = append(lines, text)
		}
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("no transcript available for video %s in language %s", videoID, language)
	}

	return strings.Join(lines, " "), nil
}
