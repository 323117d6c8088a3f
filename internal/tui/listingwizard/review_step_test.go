package listingwizard

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/khidmahq/khidma/internal/locale"
	"github.com/khidmahq/khidma/internal/tui/testfixtures"
)

func newReviewStep() *ReviewStep {
	s := NewReviewStep(testfixtures.CompleteListing(), locale.For("en"))
	s.Init()
	s.SetSize(68, 30)
	return s
}

func TestReviewConsentsStartUnchecked(t *testing.T) {
	s := newReviewStep()

	terms, originality := s.Consents()
	require.False(t, terms)
	require.False(t, originality)
}

func TestReviewTogglesConsents(t *testing.T) {
	s := newReviewStep()

	s.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	s.Update(tea.KeyPressMsg{Code: '2', Text: "2"})

	terms, originality := s.Consents()
	require.True(t, terms)
	require.True(t, originality)

	s.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	terms, _ = s.Consents()
	require.False(t, terms)
}

func TestReviewSubmitRequestsPublish(t *testing.T) {
	s := newReviewStep()

	cmd := s.Submit()
	require.NotNil(t, cmd)

	_, ok := cmd().(PublishRequestedMsg)
	require.True(t, ok)
}

func TestReviewEditorResultUpdatesDescription(t *testing.T) {
	s := newReviewStep()
	edited := "Completely reworked description text for the listing."

	s.Update(DescriptionEditedMsg{Text: edited})

	require.Equal(t, edited, s.Description().Text)
}

func TestReviewViewShowsListingAndConsents(t *testing.T) {
	s := newReviewStep()
	labels := locale.For("en")

	view := s.View()
	require.Contains(t, view, "[ ]")
	require.Contains(t, view, labels.Get("consent.terms"))
	require.Contains(t, view, labels.Get("consent.originality"))
}

func TestReviewPublishErrorShownInView(t *testing.T) {
	s := newReviewStep()
	s.SetPublishError("disk full")

	require.Contains(t, s.View(), "disk full")

	// Touching a consent clears the banner for the next attempt.
	s.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	require.NotContains(t, s.View(), "disk full")
}
