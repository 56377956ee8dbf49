package ingestion

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Senior Shopify Developer", "Senior_Shopify_Developer"},
		{"C++ / Go Engineer (m/f/d)", "C__Go_Engineer_mfd"},
		{"  .NET Dev  ", ".NET_Dev"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeTitle(tt.in), tt.in)
	}

	long := SafeTitle(strings.Repeat("a", 150))
	assert.Len(t, long, 100)
}

func TestBuildJobs(t *testing.T) {
	jobs := BuildJobs([]Row{
		{Title: "Shopify Dev", Description: "desc one", Questions: []string{"Why us?", " "}},
		{Title: "", Description: "skipped"},
		{Title: "iOS Dev", Description: "desc three"},
	})

	require.Len(t, jobs, 2)
	assert.Equal(t, 1, jobs[0].RowNumber)
	assert.Equal(t, "Shopify_Dev", jobs[0].SafeTitle)
	assert.Equal(t, "Shopify_Dev_1", jobs[0].FilePrefix)
	assert.Equal(t, []string{"Why us?"}, jobs[0].Questions)
	// Skipped rows still consume their row number.
	assert.Equal(t, 3, jobs[1].RowNumber)
	assert.Equal(t, "iOS_Dev_3", jobs[1].FilePrefix)
}

func TestBuildJobs_StripsHTMLDescriptions(t *testing.T) {
	jobs := BuildJobs([]Row{
		{Title: "Dev", Description: "<div><p>We need a <strong>Go</strong> developer.</p></div>"},
	})
	require.Len(t, jobs, 1)
	assert.Equal(t, "We need a Go developer.", jobs[0].Description)
}

func TestExtractSheetID(t *testing.T) {
	id, ok := ExtractSheetID("https://docs.google.com/spreadsheets/d/1AbC-dEf_123/edit#gid=0")
	require.True(t, ok)
	assert.Equal(t, "1AbC-dEf_123", id)

	id, ok = ExtractSheetID("https://example.com/view?id=xyz_789")
	require.True(t, ok)
	assert.Equal(t, "xyz_789", id)

	_, ok = ExtractSheetID("https://example.com/nothing-here")
	assert.False(t, ok)
}

func TestResolveColumns(t *testing.T) {
	layout, ok := resolveColumns([]string{"Question2", "TITLE", "description", "Question1"})
	require.True(t, ok)
	assert.Equal(t, 1, layout.title)
	assert.Equal(t, 2, layout.description)
	// Question columns sort by numeric suffix, not sheet position.
	assert.Equal(t, []int{3, 0}, layout.questions)

	_, ok = resolveColumns([]string{"Title", "Body"})
	assert.False(t, ok)
}

func TestParseCSV(t *testing.T) {
	csvBody := "Title,Description,Question1\n" +
		"Shopify Dev,Build storefronts,Why us?\n" +
		",missing title,\n" +
		"iOS Dev,Build apps,\n"

	rows, err := parseCSV(strings.NewReader(csvBody))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Shopify Dev", rows[0].Title)
	assert.Equal(t, []string{"Why us?"}, rows[0].Questions)
	assert.Empty(t, rows[1].Questions)
}

func TestParseCSV_NoValidRows(t *testing.T) {
	_, err := parseCSV(strings.NewReader("Title,Description\n,\n"))
	assert.Error(t, err)
}

func TestSheetFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Title,Description\nDev,Go job\n"))
	}))
	defer server.Close()

	// Point the fetcher's client at the test server regardless of URL.
	fetcher := &SheetFetcher{client: server.Client()}
	fetcher.client.Transport = rewriteTransport{base: server.URL}

	rows, err := fetcher.Fetch("https://docs.google.com/spreadsheets/d/abc123/edit")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Dev", rows[0].Title)
}

func TestSheetFetcher_BadURL(t *testing.T) {
	fetcher := NewSheetFetcher()
	_, err := fetcher.Fetch("https://example.com/not-a-sheet")
	var fetchErr *SheetFetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestSheetFetcher_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := &SheetFetcher{client: server.Client()}
	fetcher.client.Transport = rewriteTransport{base: server.URL}

	_, err := fetcher.Fetch("https://docs.google.com/spreadsheets/d/abc123/edit")
	var fetchErr *SheetFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "publicly shared")
}

type rewriteTransport struct {
	base string
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rewritten, err := http.NewRequest(req.Method, t.base+req.URL.Path, req.Body)
	if err != nil {
		return nil, err
	}
	return http.DefaultTransport.RoundTrip(rewritten)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text stays", StripHTML("plain text stays"))
	assert.Equal(t, "5 < 10 is true", StripHTML("5 < 10 is true"))

	stripped := StripHTML("<div><h2>Role</h2><p>Build <strong>Go</strong> services</p><ul><li>Ship</li></ul></div>")
	assert.Contains(t, stripped, "Role")
	assert.Contains(t, stripped, "Build Go services")
	assert.NotContains(t, stripped, "<")
}
