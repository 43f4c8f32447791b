package model

// Offer is a personalized promotion shown on the member dashboard.
type Offer struct {
	Icon        string
	Title       string
	TitleHindi  string
	Description string
}
