package entity

import "time"

// FeatureSettings is the global feature-flag document.
// The two lock flags OR-compose into the effective provider pricing lock.
type FeatureSettings struct {
	PricingEnabled         bool `json:"pricingEnabled"`
	ShowForProviders       bool `json:"showForProviders"`
	ShowForSeekers         bool `json:"showForSeekers"`
	EnforceAfterMonths     int  `json:"enforceAfterMonths"`
	LockAllToPricing       bool `json:"lockAllToPricing"`
	LockProvidersToPricing bool `json:"lockProvidersToPricing"`
	LockSeekersToPricing   bool `json:"lockSeekersToPricing"`
	ShowCityViews          bool `json:"showCityViews"`
}

// DefaultFeatureSettings returns the values used when the document is absent
func DefaultFeatureSettings() FeatureSettings {
	return FeatureSettings{
		PricingEnabled:     true,
		EnforceAfterMonths: 3,
		ShowCityViews:      true,
	}
}

// HomeSettings is the homepage curation document
type HomeSettings struct {
	FeaturedVideoIDs []string `json:"featuredVideoIds"`
	LandingVideoURLs []string `json:"landingVideoUrls"`
}

// Caps on homepage curation lists
const (
	MaxFeaturedVideos = 50
	MaxLandingVideos  = 20
)

// StudentBankSettings gates uploads to the student bank
type StudentBankSettings struct {
	UploadsEnabled bool
	UpdatedAt      *time.Time
	UpdatedBy      string
}
