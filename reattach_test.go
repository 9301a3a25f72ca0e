package reattach_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/reattach"
	"github.com/aretw0/reattach/pkg/adapters/memory"
	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardDocument(t *testing.T) *memory.Document {
	t.Helper()
	doc, err := dsl.New("doc").
		Root(dsl.Page("page").Children(
			dsl.Instance("tmpl", "Card").Fill(dsl.Solid(0, 0, 1)),
			dsl.Frame("f1", "Card").Fill(dsl.Solid(1, 0, 0)),
			dsl.Frame("f2", "Ghost"),
		)).
		Select("f1", "f2").
		Build()
	require.NoError(t, err)
	host, err := memory.NewDocument(doc)
	require.NoError(t, err)
	return host
}

func TestEngine_RunSavesReport(t *testing.T) {
	store := memory.NewStore()
	eng := reattach.New(reattach.WithReportStore(store))
	host := cardDocument(t)

	report, err := eng.Run(context.Background(), host, domain.ModeCopyOverrides)
	require.NoError(t, err)
	assert.Equal(t, "1 processed, 1 skipped", report.Message)
	assert.Equal(t, report.Message, host.Result(), "host receives the message")

	ids, err := eng.Reports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{report.ID}, ids)

	loaded, err := eng.Report(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Items, loaded.Items)
}

type brokenStore struct{ *memory.Store }

func (brokenStore) Save(context.Context, *domain.Report) error { return errors.New("disk full") }

func TestEngine_StoreFailureDoesNotFailRun(t *testing.T) {
	eng := reattach.New(reattach.WithReportStore(brokenStore{memory.NewStore()}))

	report, err := eng.Run(context.Background(), cardDocument(t), domain.ModeReattach)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
}

func TestEngine_WithoutStore(t *testing.T) {
	eng := reattach.New()

	_, err := eng.Report(context.Background(), "any")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	ids, err := eng.Reports(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEngine_HooksAreForwarded(t *testing.T) {
	var finished *domain.Report
	eng := reattach.New(reattach.WithLifecycleHooks(domain.LifecycleHooks{
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) { finished = e.Report },
	}))

	report, err := eng.Run(context.Background(), cardDocument(t), domain.ModeReattach)
	require.NoError(t, err)
	assert.Same(t, report, finished)
}
