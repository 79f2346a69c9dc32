package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diarmuidw/enquiry-backend/pkg/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	repo := NewRepository(setupAvailabilityTestDB(t))
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Logger: logger.New(logger.Options{ServiceName: "test"}),
	})
	require.NoError(t, err)
	return svc
}

func TestLookupUnknownVariantSellsNormally(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.Lookup(context.Background(), "V-unknown")
	require.NoError(t, err)
	assert.Equal(t, StateNormal, got.Directive.State)
	assert.False(t, got.Directive.BuyButtonDisabled)
}

func TestLookupRecordedStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetStatus(ctx, "V1", "gid://shopify/Product/1", "Discontinued", nil))

	got, err := svc.Lookup(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, StateDiscontinued, got.Directive.State)
	assert.True(t, got.Directive.ShowAlternatives)
}

func TestLookupBatchCoversMissingVariants(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetStatus(ctx, "V1", "", "not_for_sale", nil))

	got, err := svc.LookupBatch(ctx, []string{"V1", "V2", "V1", " "})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, StateNotForSale, got[0].Directive.State)
	assert.Equal(t, StateNormal, got[1].Directive.State)
}

func TestLookupBatchRequiresIDs(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.LookupBatch(context.Background(), []string{"", "  "})
	assert.Error(t, err)
}
