package testfixtures

import (
	"context"
	"testing"

	"github.com/khidmahq/khidma/internal/listing"
	"github.com/stretchr/testify/require"
)

func TestMockDraftStoreRoundTrip(t *testing.T) {
	store := NewMockDraftStore()
	ctx := context.Background()

	_, ok := store.Load(ctx)
	require.False(t, ok, "empty store should report absent")

	p := listing.Project(CompleteListing())
	require.True(t, store.Save(ctx, p))

	got, ok := store.Load(ctx)
	require.True(t, ok)
	require.Equal(t, p, got)

	store.Clear(ctx)
	_, ok = store.Load(ctx)
	require.False(t, ok, "cleared store should report absent")

	require.Equal(t, 1, store.SaveCalls)
	require.Equal(t, 3, store.LoadCalls)
	require.Equal(t, 1, store.ClearCalls)
}

func TestMockDraftStoreSaveFailure(t *testing.T) {
	store := NewMockDraftStore()
	store.SaveOK = false

	ok := store.Save(context.Background(), listing.Projection{})
	require.False(t, ok)
	require.Nil(t, store.Draft)
}

func TestMockSenderRecordsMessages(t *testing.T) {
	sender := NewMockSender()
	sender.Send("first")
	sender.Send("second")

	msgs := sender.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, "first", msgs[0])

	sender.Reset()
	require.Empty(t, sender.Messages())
}

func TestFixturesPassTheirGates(t *testing.T) {
	l := CompleteListing()
	for step := listing.MinStep; step <= listing.MaxStep; step++ {
		require.True(t, listing.StepValid(step, l), "step %d should be valid", step)
	}

	require.False(t, listing.StepValid(listing.StepBasics, EmptyListing()))
}

func TestRestoredListingDropsBytes(t *testing.T) {
	l := RestoredListing()

	require.NotNil(t, l.Basic.MainImage)
	require.Nil(t, l.Basic.MainImage.Data)
	require.Equal(t, FixedPreview, l.Basic.MainImage.Preview)
	for _, img := range l.Portfolio.Images {
		require.Nil(t, img.Data)
		require.NotEmpty(t, img.Preview)
	}
}
