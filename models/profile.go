package models

import "fmt"

// Profile holds the static company metadata shown in the dashboard header.
type Profile struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"companyName"`
	Exchange    string `json:"exchange"`
	Industry    string `json:"industry"`
	Website     string `json:"website"`
	Image       string `json:"image"`
}

// PlaceholderLogoURL returns the deterministic fallback logo for a symbol,
// used when the profile image is missing or fails to load.
func PlaceholderLogoURL(symbol string) string {
	return fmt.Sprintf("https://placehold.co/200x200/1f2937/ffffff?text=%s", symbol)
}

// LogoURL returns the profile image, falling back to the placeholder when
// the profile carries no image.
func (p Profile) LogoURL() string {
	if p.Image == "" {
		return PlaceholderLogoURL(p.Symbol)
	}
	return p.Image
}
