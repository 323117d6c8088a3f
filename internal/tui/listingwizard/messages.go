package listingwizard

import (
	"time"

	"github.com/khidmahq/khidma/internal/listing"
	"github.com/khidmahq/khidma/internal/wizard"
)

// BasicsSubmittedMsg is sent when the basics step passes validation.
type BasicsSubmittedMsg struct {
	Info listing.BasicInfo
}

// DescriptionSubmittedMsg is sent when the description step passes validation.
type DescriptionSubmittedMsg struct {
	Description listing.Description
}

// PricingSubmittedMsg is sent when the pricing step passes validation.
type PricingSubmittedMsg struct {
	Pricing listing.Pricing
}

// PortfolioSubmittedMsg is sent when the portfolio step is confirmed.
type PortfolioSubmittedMsg struct {
	Portfolio listing.Portfolio
}

// PublishRequestedMsg is sent when the user activates Publish on the review step.
type PublishRequestedMsg struct{}

// PublishResultMsg carries the outcome of a publish attempt.
type PublishResultMsg struct {
	Result wizard.PublishResult
}

// AutoSaveMsg asks the wizard to sync the active panel and persist a draft.
// The auto-save task sends it through the program so all aggregate writes
// stay on the update loop.
type AutoSaveMsg struct{}

// DraftSavedMsg reports a completed draft save for the footer stamp.
type DraftSavedMsg struct {
	When time.Time
	OK   bool
}

// DescriptionEditedMsg is sent when the external editor returns with new
// description text.
type DescriptionEditedMsg struct {
	Text string
}

// TabExitForwardMsg is sent when Tab is pressed on a step's last input.
// The wizard moves focus to the navigation buttons.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg is sent when Shift+Tab is pressed on a step's first input.
type TabExitBackwardMsg struct{}
