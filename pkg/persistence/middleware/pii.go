package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/ports"
	"github.com/mohae/deepcopy"
)

// Mask replaces redacted text.
const Mask = "***"

type piiMiddleware struct {
	next     ports.ReportStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks text matching the patterns
// in node names, item errors, diagnostics and the summary message before a
// report is stored. Host error strings can carry file paths or account names.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		patterns[i] = re
	}
	return func(next ports.ReportStore) ports.ReportStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, report *domain.Report) error {
	// Clone so the caller's report keeps the original text.
	cloned := deepcopy.Copy(report).(*domain.Report)

	for i := range cloned.Items {
		cloned.Items[i].NodeName = m.mask(cloned.Items[i].NodeName)
		cloned.Items[i].Error = m.mask(cloned.Items[i].Error)
	}
	for i, d := range cloned.Diagnostics {
		cloned.Diagnostics[i] = m.mask(d)
	}
	cloned.Message = m.mask(cloned.Message)

	return m.next.Save(ctx, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, id string) (*domain.Report, error) {
	return m.next.Load(ctx, id)
}

func (m *piiMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) mask(s string) string {
	for _, p := range m.patterns {
		s = p.ReplaceAllString(s, Mask)
	}
	return s
}
