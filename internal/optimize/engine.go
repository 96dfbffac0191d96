package optimize

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/resumix/resumix/internal/config"
	"github.com/resumix/resumix/internal/fetch"
	"github.com/resumix/resumix/internal/ingestion"
	"github.com/resumix/resumix/internal/projection"
	"github.com/resumix/resumix/internal/rendering"
	"github.com/resumix/resumix/internal/types"
)

// Engine runs the optimize pipeline: requirements -> line scores ->
// page-constrained selection -> rendered PDF.
type Engine struct {
	geminiKey  string
	chromePath string
	fetcher    *fetch.CachedFetcher

	// swapped out in tests
	extract func(ctx context.Context, text, apiKey string) ([]string, error)
	render  func(ctx context.Context, html, chromePath string) ([]byte, error)
}

// NewEngine creates an engine from server configuration.
func NewEngine(cfg *config.ServerConfig) *Engine {
	return &Engine{
		geminiKey:  cfg.GeminiAPIKey,
		chromePath: cfg.ChromePath,
		fetcher:    fetch.NewCachedFetcher(nil, 0),
		extract:    ingestion.ExtractWithLLM,
		render:     rendering.PDF,
	}
}

// GeneratePDF produces the tailored single-page PDF for a stored document
// and a job description (pasted text or a posting URL). noCache forces
// re-fetching the posting and re-scoring every line.
func (e *Engine) GeneratePDF(ctx context.Context, doc types.Document, jobDescription string, noCache bool) ([]byte, error) {
	jobID := uuid.NewString()[:8]

	requirements, err := e.requirements(ctx, jobDescription, noCache)
	if err != nil {
		return nil, err
	}
	if len(requirements) == 0 {
		return nil, fmt.Errorf("no requirements could be extracted from the job description")
	}
	log.Printf("optimize %s: %d requirements", jobID, len(requirements))

	scored, err := ScoreLines(ctx, doc, requirements, noCache)
	if err != nil {
		return nil, fmt.Errorf("line scoring failed: %w", err)
	}

	budget := Budget(scored)
	selection := Select(scored, budget)
	pruned := Prune(scored, selection)
	if pruned.ItemCount() == 0 {
		return nil, fmt.Errorf("no resume content fits the page budget")
	}
	log.Printf("optimize %s: kept %d of %d items within budget %d", jobID, pruned.ItemCount(), doc.ItemCount(), budget)

	html, err := rendering.HTML(projection.Project(pruned, projection.ModeView))
	if err != nil {
		return nil, err
	}
	pdf, err := e.render(ctx, html, e.chromePath)
	if err != nil {
		return nil, err
	}
	log.Printf("optimize %s: rendered %d bytes", jobID, len(pdf))
	return pdf, nil
}

// requirements resolves the job description into requirement sentences:
// posting URLs are fetched first, then Gemini extraction when a key is
// configured, with the lexical splitter as the fallback either way.
func (e *Engine) requirements(ctx context.Context, jobDescription string, noCache bool) ([]string, error) {
	text := jobDescription
	if ingestion.LooksLikeURL(jobDescription) {
		posting, err := ingestion.FromURL(ctx, jobDescription, ingestion.URLOptions{
			Fetcher:    e.fetcher,
			SkipCache:  noCache,
			UseBrowser: true,
			ChromePath: e.chromePath,
		})
		if err != nil {
			return nil, fmt.Errorf("could not fetch job posting: %w", err)
		}
		text = posting.Text
	}

	if e.geminiKey != "" {
		reqs, err := e.extract(ctx, text, e.geminiKey)
		if err == nil && len(reqs) > 0 {
			return reqs, nil
		}
		log.Printf("optimize: LLM extraction unavailable, using lexical split: %v", err)
	}
	return ingestion.SplitRequirements(text), nil
}
