package optimize

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumix/resumix/internal/document"
	"github.com/resumix/resumix/internal/fetch"
	"github.com/resumix/resumix/internal/types"
)

func testEngine() (*Engine, *capturedRender) {
	captured := &capturedRender{pdf: []byte("%PDF-1.7 fake")}
	return &Engine{
		fetcher: fetch.NewCachedFetcher(nil, 0),
		extract: func(_ context.Context, _, _ string) ([]string, error) {
			return nil, fmt.Errorf("no llm in tests")
		},
		render: captured.render,
	}, captured
}

type capturedRender struct {
	pdf  []byte
	html string
	err  error
}

func (c *capturedRender) render(_ context.Context, html, _ string) ([]byte, error) {
	c.html = html
	return c.pdf, c.err
}

func engineDoc() types.Document {
	doc := document.Default()
	doc = document.SetHeadingName(doc, "Ada Lovelace")
	doc = document.AddItem(doc, 0)
	doc = document.SetItemTitle(doc, 0, 0, 0, "Analytical Engines Inc")
	for i, line := range []string{
		"Built Go microservices with PostgreSQL",
		"Organized the office holiday party",
		"Deployed workloads to Kubernetes clusters",
	} {
		doc = document.AddLine(doc, 0, 0)
		doc = document.SetLineContent(doc, 0, 0, i, line)
	}
	return doc
}

const jobText = `Requirements:
- 5 years of Go experience with PostgreSQL
- Kubernetes in production environments`

func TestGeneratePDF(t *testing.T) {
	engine, captured := testEngine()

	pdf, err := engine.GeneratePDF(context.Background(), engineDoc(), jobText, false)
	require.NoError(t, err)
	assert.Equal(t, captured.pdf, pdf)

	assert.Contains(t, captured.html, "Ada Lovelace")
	assert.Contains(t, captured.html, "Built Go microservices with PostgreSQL")
}

func TestGeneratePDFFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div class="job-description">
			<ul><li>5 years of Go experience with PostgreSQL</li>
			<li>Kubernetes in production environments</li></ul>
		</div></body></html>`))
	}))
	defer server.Close()

	engine, captured := testEngine()
	pdf, err := engine.GeneratePDF(context.Background(), engineDoc(), server.URL, false)
	require.NoError(t, err)
	assert.Equal(t, captured.pdf, pdf)
}

func TestGeneratePDFURLUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	engine, _ := testEngine()
	_, err := engine.GeneratePDF(context.Background(), engineDoc(), server.URL, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not fetch job posting")
}

func TestGeneratePDFLLMPath(t *testing.T) {
	engine, captured := testEngine()
	engine.geminiKey = "test-key"

	t.Run("extraction result used", func(t *testing.T) {
		var gotText string
		engine.extract = func(_ context.Context, text, apiKey string) ([]string, error) {
			gotText = text
			assert.Equal(t, "test-key", apiKey)
			return []string{"Go experience with PostgreSQL databases"}, nil
		}
		_, err := engine.GeneratePDF(context.Background(), engineDoc(), jobText, false)
		require.NoError(t, err)
		assert.Equal(t, jobText, gotText)
		assert.NotEmpty(t, captured.html)
	})

	t.Run("extraction failure falls back to lexical split", func(t *testing.T) {
		engine.extract = func(_ context.Context, _, _ string) ([]string, error) {
			return nil, fmt.Errorf("quota exceeded")
		}
		_, err := engine.GeneratePDF(context.Background(), engineDoc(), jobText, false)
		require.NoError(t, err)
	})
}

func TestGeneratePDFNoRequirements(t *testing.T) {
	engine, _ := testEngine()
	_, err := engine.GeneratePDF(context.Background(), engineDoc(), "ok", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no requirements")
}

func TestGeneratePDFNothingFits(t *testing.T) {
	doc := document.Default()
	doc = document.AddItem(doc, 0)
	doc = document.AddLine(doc, 0, 0)
	doc = document.SetLineContent(doc, 0, 0, 0, strings.Repeat("very long line ", 400))

	engine, _ := testEngine()
	_, err := engine.GeneratePDF(context.Background(), doc, jobText, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fits the page budget")
}
