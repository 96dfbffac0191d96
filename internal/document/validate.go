package document

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"

	"github.com/resumix/resumix/internal/types"
)

// documentSchema is the JSON Schema a stored resumeinfo blob must satisfy
// before it is trusted as a Document. Anything that fails falls back to the
// synthesized default; ad hoc key sniffing is deliberately avoided.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["heading_info", "sections"],
  "properties": {
    "heading_info": {
      "type": "object",
      "required": ["heading_name", "subsequent_content"],
      "properties": {
        "heading_name": {"type": "string"},
        "subsequent_content": {"type": ["array", "null"], "items": {"type": "string"}}
      }
    },
    "sections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["sect_id", "title", "items"],
        "properties": {
          "sect_id": {"type": "integer"},
          "title": {"type": "string"},
          "items": {
            "type": ["array", "null"],
            "items": {
              "type": "object",
              "required": ["titles", "lines", "cate_scores"],
              "properties": {
                "titles": {
                  "type": ["array", "null"],
                  "maxItems": 6,
                  "items": {"type": "string"}
                },
                "lines": {
                  "type": ["array", "null"],
                  "items": {
                    "type": "object",
                    "required": ["content"],
                    "properties": {
                      "content": {"type": "string"},
                      "content_str": {"type": "string"}
                    }
                  }
                },
                "cate_scores": {
                  "type": "object",
                  "properties": {
                    "weight": {"type": "number"},
                    "bias": {"type": "number"}
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// ValidateOrDefault decodes a stored resumeinfo blob into a Document. When
// the blob is empty, fails the schema, or does not decode, it returns the
// synthesized default document and false. On success it returns the decoded
// document, renumbered to restore the section id invariant, and true.
func ValidateOrDefault(raw json.RawMessage) (types.Document, bool) {
	if len(raw) == 0 {
		return Default(), false
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil || !result.Valid() {
		return Default(), false
	}

	var doc types.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Default(), false
	}
	if len(doc.Sections) == 0 {
		return Default(), false
	}

	renumber(doc.Sections)
	for si := range doc.Sections {
		for ii := range doc.Sections[si].Items {
			for li := range doc.Sections[si].Items[ii].Lines {
				line := &doc.Sections[si].Items[ii].Lines[li]
				if line.Display == "" && line.Content != "" {
					line.Display = StripTags(line.Content)
				}
			}
		}
	}
	return doc, true
}

// Param bounds the server enforces on save.
const (
	MinWeight = 0.0
	MaxWeight = 2.0
	MinBias   = -2.0
	MaxBias   = 2.0
)

// ClampParams clamps every item's weight to [0,2] and bias to [-2,2].
// The model stores whatever a client sends; the server clamps on persist
// so non-UI clients cannot store out-of-range values.
func ClampParams(doc types.Document) types.Document {
	out := doc.Clone()
	for si := range out.Sections {
		for ii := range out.Sections[si].Items {
			p := &out.Sections[si].Items[ii].Params
			p.Weight = clamp(p.Weight, MinWeight, MaxWeight)
			p.Bias = clamp(p.Bias, MinBias, MaxBias)
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
