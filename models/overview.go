package models

// Overview bundles the combined payload from the stock endpoint: profile,
// latest quote, and the intraday chart series fetched in a single request.
type Overview struct {
	Profile  Profile `json:"profile"`
	Quote    Quote   `json:"quote"`
	Intraday Series  `json:"chart_intraday"`
}
