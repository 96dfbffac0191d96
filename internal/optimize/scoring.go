// Package optimize scores resume lines against job requirements and picks
// the best-scoring subset that fits a single page.
package optimize

import (
	"context"
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/resumix/resumix/internal/types"
)

// MaxLineScore is the top of the normalized score range.
const MaxLineScore = 10.0

var tokenSplit = regexp.MustCompile(`[^a-z0-9+#]+`)

// stopwords are dropped before overlap computation. The list is small on
// purpose: requirement sentences are short and aggressive filtering
// removes signal ("experience with go" keeps "go").
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "in": true,
	"is": true, "it": true, "of": true, "on": true, "or": true, "our": true,
	"that": true, "the": true, "to": true, "we": true, "will": true,
	"with": true, "you": true, "your": true,
}

// tokenize lowercases, splits on non-token characters, and drops
// stopwords. "+" and "#" stay inside tokens so "c++" and "c#" survive.
func tokenize(s string) map[string]bool {
	out := make(map[string]bool)
	for _, tok := range tokenSplit.Split(strings.ToLower(s), -1) {
		if len(tok) < 2 && tok != "c" && tok != "r" {
			continue
		}
		if stopwords[tok] {
			continue
		}
		out[tok] = true
	}
	return out
}

// similarity is the cosine overlap of two binary token sets.
func similarity(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	shared := 0
	for tok := range a {
		if b[tok] {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}
	return float64(shared) / math.Sqrt(float64(len(a))*float64(len(b)))
}

// lineRef addresses one line in the document tree.
type lineRef struct {
	section, item, line int
}

// scoreCacheKey is the aux entry carrying per-line scores from a previous
// run. Clients round-trip aux untouched, so saved documents keep it.
const scoreCacheKey = "line_scores"

// ScoreLines scores every line's display text against the requirement set
// and returns a copy of the document with Line.Score populated on the
// 0..MaxLineScore scale. Raw similarities are the max over requirements,
// then min-max normalized across the whole document; when every line ties,
// all get full marks.
//
// Scores from a previous run survive in each item's aux; they are reused
// unless noCache is set or any item's cache is missing or stale.
func ScoreLines(ctx context.Context, doc types.Document, requirements []string, noCache bool) (types.Document, error) {
	out := doc.Clone()

	refs := collectLines(out)
	if len(refs) == 0 {
		return out, nil
	}
	if !noCache && restoreCached(out) {
		return out, nil
	}

	reqTokens := make([]map[string]bool, len(requirements))
	for i, req := range requirements {
		reqTokens[i] = tokenize(req)
	}

	raw := make([]float64, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	for start := range out.Sections {
		si := start
		g.Go(func() error {
			for i, ref := range refs {
				if ref.section != si {
					continue
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				lineTokens := tokenize(lineAt(out, ref).Display)
				best := 0.0
				for _, rt := range reqTokens {
					if sim := similarity(lineTokens, rt); sim > best {
						best = sim
					}
				}
				raw[i] = best
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.Document{}, err
	}

	normalize(raw)
	for i, ref := range refs {
		lineAt(out, ref).Score = raw[i]
	}
	writeCache(out)
	return out, nil
}

// restoreCached loads every item's cached scores into Line.Score. It only
// succeeds when every item carries a cache of the right length; a partial
// cache means the document changed since the last run.
func restoreCached(doc types.Document) bool {
	for _, section := range doc.Sections {
		for _, item := range section.Items {
			if len(item.Lines) == 0 {
				continue
			}
			raw, ok := item.Aux[scoreCacheKey]
			if !ok {
				return false
			}
			var scores []float64
			if err := json.Unmarshal(raw, &scores); err != nil || len(scores) != len(item.Lines) {
				return false
			}
		}
	}
	for si := range doc.Sections {
		for ii := range doc.Sections[si].Items {
			item := &doc.Sections[si].Items[ii]
			if len(item.Lines) == 0 {
				continue
			}
			var scores []float64
			_ = json.Unmarshal(item.Aux[scoreCacheKey], &scores)
			for li := range item.Lines {
				item.Lines[li].Score = scores[li]
			}
		}
	}
	return true
}

// writeCache records the freshly computed scores in each item's aux.
func writeCache(doc types.Document) {
	for si := range doc.Sections {
		for ii := range doc.Sections[si].Items {
			item := &doc.Sections[si].Items[ii]
			if len(item.Lines) == 0 {
				continue
			}
			scores := make([]float64, len(item.Lines))
			for li := range item.Lines {
				scores[li] = item.Lines[li].Score
			}
			raw, err := json.Marshal(scores)
			if err != nil {
				continue
			}
			if item.Aux == nil {
				item.Aux = make(map[string]json.RawMessage)
			}
			item.Aux[scoreCacheKey] = raw
		}
	}
}

// normalize rescales raw similarities to 0..MaxLineScore in place. A flat
// distribution gets full marks everywhere, matching empty-requirement and
// single-line documents.
func normalize(raw []float64) {
	mn, mx := raw[0], raw[0]
	for _, v := range raw[1:] {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	for i, v := range raw {
		if mx > mn {
			raw[i] = (v - mn) / (mx - mn) * MaxLineScore
		} else {
			raw[i] = MaxLineScore
		}
	}
}

func collectLines(doc types.Document) []lineRef {
	var refs []lineRef
	for si, section := range doc.Sections {
		for ii, item := range section.Items {
			for li := range item.Lines {
				refs = append(refs, lineRef{section: si, item: ii, line: li})
			}
		}
	}
	return refs
}

func lineAt(doc types.Document, ref lineRef) *types.Line {
	return &doc.Sections[ref.section].Items[ref.item].Lines[ref.line]
}
