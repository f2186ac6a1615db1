package dto

// SaveFeaturesResponse reports the saved flags and the cascade counts the save triggered
type SaveFeaturesResponse struct {
	OK                bool             `json:"ok"`
	Features          *FeatureSettings `json:"features"`
	UpdatedDemoted    int              `json:"updatedDemoted"`
	UpdatedReapproved int              `json:"updatedReapproved"`
}

// SaveFeaturesRequest carries a features save. Pointer fields distinguish an
// omitted flag from an explicit false/zero; omitted flags keep their defaults.
type SaveFeaturesRequest struct {
	PricingEnabled         *bool `json:"pricingEnabled"`
	ShowForProviders       *bool `json:"showForProviders"`
	ShowForSeekers         *bool `json:"showForSeekers"`
	EnforceAfterMonths     *int  `json:"enforceAfterMonths"`
	LockAllToPricing       *bool `json:"lockAllToPricing"`
	LockProvidersToPricing *bool `json:"lockProvidersToPricing"`
	LockSeekersToPricing   *bool `json:"lockSeekersToPricing"`
	ShowCityViews          *bool `json:"showCityViews"`
}

// FeatureSettings mirrors the feature-flag document on the wire
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

// FeaturedVideoEntry is one resolved entry of the home featured list
type FeaturedVideoEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	HasVideo bool   `json:"hasVideo"`
	Missing  bool   `json:"missing"`
}

// FeaturedVideosResponse wraps the resolved featured list
type FeaturedVideosResponse struct {
	Videos []FeaturedVideoEntry `json:"videos"`
}

// SaveFeaturedVideosRequest carries the new featured service id list
type SaveFeaturedVideosRequest struct {
	IDs []string `json:"ids"`
}

// SaveFeaturedVideosResponse acknowledges the persisted list
type SaveFeaturedVideosResponse struct {
	OK  bool     `json:"ok"`
	IDs []string `json:"ids"`
}

// LandingVideosResponse wraps the landing page video URL list
type LandingVideosResponse struct {
	URLs []string `json:"urls"`
}

// SaveLandingVideosRequest carries the new landing video URL list
type SaveLandingVideosRequest struct {
	URLs []string `json:"urls"`
}

// SaveLandingVideosResponse acknowledges the normalized, persisted list
type SaveLandingVideosResponse struct {
	OK   bool     `json:"ok"`
	URLs []string `json:"urls"`
}
