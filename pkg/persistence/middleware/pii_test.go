package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/reattach/pkg/adapters/memory"
	"github.com/aretw0/reattach/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlying := memory.NewStore()
	mw, err := middleware.NewPIIMiddleware([]string{`[\w.]+@[\w.]+`})
	require.NoError(t, err)
	secure := mw(underlying)

	ctx := context.Background()
	report := sampleReport()
	require.NoError(t, secure.Save(ctx, report))

	assert.Equal(t, "alice@example.com", report.Items[1].NodeName, "caller's report is untouched")

	stored, err := underlying.Load(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Card", stored.Items[0].NodeName)
	assert.Equal(t, middleware.Mask, stored.Items[1].NodeName)
	assert.Equal(t, "copy failed for ***", stored.Items[1].Error)
	assert.Equal(t, []string{"copy failed for ***"}, stored.Diagnostics)
	assert.Equal(t, "2 processed, 0 skipped (1 failed: copy failed for ***)", stored.Message)
}

func TestPIIMiddleware_InvalidPattern(t *testing.T) {
	_, err := middleware.NewPIIMiddleware([]string{"("})
	assert.Error(t, err)
}

func TestChain_OrdersOutermostFirst(t *testing.T) {
	underlying := memory.NewStore()
	pii, err := middleware.NewPIIMiddleware([]string{"alice"})
	require.NoError(t, err)
	key := generateKey(t)
	enc := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})

	store := middleware.Chain(underlying, pii, enc)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleReport()))

	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "***@example.com", loaded.Items[1].NodeName, "masked before sealing")
}
