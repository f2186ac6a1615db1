package entity

import "time"

// Ad colors shown in the console banner picker
const (
	AdColorCopper = "copper"
	AdColorPower  = "power"
	AdColorDark   = "dark"
	AdColorLight  = "light"
)

// NormalizeAdColor coerces unknown colors to the default
func NormalizeAdColor(c string) string {
	switch c {
	case AdColorCopper, AdColorPower, AdColorDark, AdColorLight:
		return c
	}
	return AdColorCopper
}

// Ad represents a promotional banner
type Ad struct {
	ID         string
	Text       string
	TextAr     string
	Href       string
	LinkURL    string
	ImageURL   string
	Title      string
	SaleItemID *string
	Color      string
	Active     bool
	Priority   int
	CreatedAt  time.Time
}
