package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc-def", PlatformLever},
		{"https://acme.wd1.myworkdayjobs.com/careers/job/123", PlatformWorkday},
		{"https://careers.example.com/jobs/123", PlatformUnknown},
		{"not a url", PlatformUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectPlatform(tt.url), tt.url)
	}
}

func TestExtractPostingText_UsesContentSelector(t *testing.T) {
	html := `<html><body>
		<nav>Site navigation</nav>
		<div class="job-description">Build distributed systems in Go.</div>
		<footer>Copyright</footer>
	</body></html>`

	text, err := extractPostingText(html, PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Build distributed systems in Go.", text)
}

func TestExtractPostingText_StripsNoise(t *testing.T) {
	html := `<html><body>
		<div class="job__description">
			<p>Write Go services.</p>
			<div class="voluntary-self-id">EEO survey</div>
		</div>
	</body></html>`

	text, err := extractPostingText(html, PlatformGreenhouse)
	require.NoError(t, err)
	assert.Contains(t, text, "Write Go services.")
	assert.NotContains(t, text, "EEO survey")
}

func TestExtractPostingText_FallsBackToBody(t *testing.T) {
	html := `<html><body><p>Just a paragraph about the role.</p></body></html>`

	text, err := extractPostingText(html, PlatformUnknown)
	require.NoError(t, err)
	assert.Contains(t, text, "Just a paragraph about the role.")
}

func TestJobPosting_HTTPTier(t *testing.T) {
	body := `<html><body><div class="job-description">` +
		strings.Repeat("Senior Go engineer building data pipelines. ", 20) +
		`</div></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	posting, err := JobPosting(context.Background(), srv.URL, &Options{
		Timeout:      DefaultTimeout,
		AllowBrowser: false,
	})
	require.NoError(t, err)
	assert.Contains(t, posting.Text, "Senior Go engineer")
	assert.False(t, posting.UsedBrowser)
	assert.Equal(t, PlatformUnknown, posting.Platform)
}

func TestJobPosting_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := JobPosting(context.Background(), srv.URL, &Options{
		Timeout:      DefaultTimeout,
		AllowBrowser: false,
	})
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "403")
}

func TestJobPosting_InvalidURL(t *testing.T) {
	_, err := JobPosting(context.Background(), "not-a-url", &Options{AllowBrowser: false})
	assert.Error(t, err)
}

func TestTooShort(t *testing.T) {
	assert.True(t, tooShort("Apply now"))
	assert.False(t, tooShort(strings.Repeat("long posting text ", 50)))
}
