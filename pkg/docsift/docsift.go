package docsift

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/docsift/docsift/internal/logger"
	"github.com/docsift/docsift/pkg/classify"
	"github.com/docsift/docsift/pkg/content"
	"github.com/docsift/docsift/pkg/decode"
	"github.com/docsift/docsift/pkg/scorer"
	"github.com/docsift/docsift/pkg/segment"
	"github.com/docsift/docsift/pkg/tables"
)

// Docsift is the main entry point for document extraction. One instance
// holds one validated configuration and one scorer handle; the scorer is
// created once and reused for every extraction, carrying no per-document
// state between calls.
type Docsift struct {
	cfg     Config
	scorer  scorer.Scorer
	adapter *classify.Adapter
}

// New creates a pipeline. Configuration errors fail fast here, before any
// extraction begins.
func New(opts ...Option) (*Docsift, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := cfg.Scorer
	if s == nil {
		var err error
		s, err = buildScorer(cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Docsift{
		cfg:     cfg,
		scorer:  s,
		adapter: classify.New(s, cfg.Labels, cfg.Threshold),
	}, nil
}

// buildScorer resolves a built-in scorer by name.
func buildScorer(cfg Config) (scorer.Scorer, error) {
	remote := scorer.Config{Model: cfg.Model, APIKey: cfg.APIKey, BaseURL: cfg.BaseURL}
	switch cfg.ScorerName {
	case "", "keyword":
		return scorer.NewKeyword(cfg.Lexicon), nil
	case "openai":
		return scorer.NewOpenAI(remote), nil
	case "anthropic":
		return scorer.NewAnthropic(remote), nil
	default:
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("unknown scorer: %q (use keyword, openai, or anthropic)", cfg.ScorerName),
		}
	}
}

// Scorer returns the configured scorer handle.
func (d *Docsift) Scorer() scorer.Scorer { return d.scorer }

// ExtractFile decodes, segments, classifies, and aggregates one document.
// Decode errors abort the extraction; scoring failures are absorbed per
// paragraph by the classifier adapter.
func (d *Docsift) ExtractFile(ctx context.Context, path string) (*content.Result, error) {
	res, format, err := decode.File(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.process(ctx, res, format, filepath.Base(path))
}

// ExtractBytes runs the pipeline over already-loaded document bytes.
func (d *Docsift) ExtractBytes(ctx context.Context, data []byte, format decode.Format, name string) (*content.Result, error) {
	dec, err := decode.ForFormat(format)
	if err != nil {
		return nil, err
	}
	res, err := dec.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	return d.process(ctx, res, format, name)
}

// pageText pairs a page's text with its 1-based page number; 0 means the
// source is not paginated.
type pageText struct {
	page int
	text string
}

func (d *Docsift) process(ctx context.Context, res *decode.Result, format decode.Format, name string) (*content.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages := []pageText{{text: res.Text}}
	if len(res.Pages) > 0 {
		pages = pages[:0]
		for i, text := range res.Pages {
			pages = append(pages, pageText{page: i + 1, text: text})
		}
	}

	var textUnits []content.Unit
	var tableUnits []content.Unit
	paragraphOrdinal := 0

	for _, pg := range pages {
		body := pg.text

		if d.cfg.ExtractTables && !res.StructuredTables {
			// No native table markup: recover table regions heuristically
			// and keep those lines out of paragraph segmentation.
			grids, remainder := tables.Extract(body)
			body = remainder
			for _, grid := range grids {
				tableUnits = append(tableUnits, content.NewTableUnit(grid, pagePosition(pg.page)))
			}
		}

		for _, para := range segment.Paragraphs(body) {
			paragraphOrdinal++
			pos := &content.Position{Page: pg.page, Paragraph: paragraphOrdinal}
			if unit, ok := d.adapter.Paragraph(ctx, para, pos); ok {
				textUnits = append(textUnits, unit)
			}
		}
	}

	if d.cfg.ExtractTables && res.StructuredTables {
		for _, grid := range res.Tables {
			tableUnits = append(tableUnits, content.NewTableUnit(grid, nil))
		}
	}

	meta := content.Metadata{
		FileName:       name,
		SourceType:     string(format),
		ExtractedAt:    time.Now().UTC(),
		PageCount:      res.PageCount,
		ParagraphCount: paragraphOrdinal,
	}

	result := content.Aggregate(meta, textUnits, tableUnits)

	logger.Debug("extraction complete",
		"file", name,
		"format", format,
		"paragraphs", paragraphOrdinal,
		"text_units", len(textUnits),
		"table_units", len(tableUnits))

	return result, nil
}

// pagePosition returns a page-only position, or nil when the source is not
// paginated.
func pagePosition(page int) *content.Position {
	if page == 0 {
		return nil
	}
	return &content.Position{Page: page}
}
