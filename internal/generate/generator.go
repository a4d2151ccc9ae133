package generate

import (
	"context"
	"strings"
	"time"

	"github.com/eduforge/eduforge/internal/fault"
	"github.com/eduforge/eduforge/internal/llm"
	"github.com/eduforge/eduforge/internal/log"
)

// Per-call budget for a lesson plan section. Sections run concurrently, so
// the whole plan settles within roughly one section budget.
const sectionTimeout = 20 * time.Second

// Config carries the dependencies for a Generator.
type Config struct {
	Client llm.Client
	Logger log.Logger
}

func (c Config) validate() error {
	if c.Client == nil {
		return fault.New(fault.KindArtifactGeneration, "generator requires a generation client")
	}
	return nil
}

// Generator produces assembled teaching documents. One Generator serves all
// artifact types and is safe for concurrent use.
type Generator struct {
	client llm.Client
	logger log.Logger
}

// New builds a Generator from cfg.
func New(cfg Config) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	return &Generator{client: cfg.Client, logger: logger}, nil
}

// section is one named slice of a multi-part document. Results are matched
// back to sections by identity, never by completion order.
type section struct {
	name    string
	heading string
	conv    llm.Conversation
}

type sectionResult struct {
	idx  int
	text string
	err  error
}

// generateSections fans the section calls out concurrently and waits for
// every one of them to settle. A failed section does not cancel its
// siblings; the first failure in section order is returned after all calls
// finish.
func (g *Generator) generateSections(ctx context.Context, sections []section, opts llm.CallOptions) ([]string, error) {
	results := make(chan sectionResult, len(sections))
	for i, s := range sections {
		go func(i int, s section) {
			text, err := g.client.Generate(ctx, s.conv, opts)
			if err != nil && fault.KindOf(err) == fault.KindUnknown {
				err = fault.Section(s.name, "generating the "+s.name+" section failed", err)
			}
			results <- sectionResult{idx: i, text: text, err: err}
		}(i, s)
	}

	texts := make([]string, len(sections))
	errs := make([]error, len(sections))
	for range sections {
		r := <-results
		texts[r.idx] = r.text
		errs[r.idx] = r.err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return texts, nil
}

// generateOne runs a single-call artifact. Unclassified failures become
// artifact generation errors; classified ones propagate unchanged.
func (g *Generator) generateOne(ctx context.Context, conv llm.Conversation, opts llm.CallOptions, artifact string) (string, error) {
	text, err := g.client.Generate(ctx, conv, opts)
	if err != nil {
		if fault.KindOf(err) == fault.KindUnknown {
			err = fault.Wrap(fault.KindArtifactGeneration, "generating the "+artifact+" failed", err)
		}
		return "", err
	}
	return text, nil
}

func underline(s string) string {
	return strings.Repeat("=", len(s))
}

// assemble lays the section texts out under their headings, in section
// order, beneath the document banner.
func assemble(banner string, sections []section, texts []string) string {
	var b strings.Builder
	b.WriteString(banner)
	b.WriteByte('\n')
	b.WriteString(underline(banner))
	for i, s := range sections {
		b.WriteString("\n\n")
		b.WriteString(s.heading)
		b.WriteByte('\n')
		b.WriteString(underline(s.heading))
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(texts[i]))
	}
	return b.String()
}
