// Package httpapi provides HTTP handlers and data transfer objects for the search-as-you-type API.
package httpapi

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string `json:"status"`
	StringCount int    `json:"string_count"`
	SuffixCount int    `json:"suffix_count"`
}

// SearchItem is one matching string with the byte offsets of every match in it
type SearchItem struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Positions []int  `json:"positions"`
}

// SearchResponse represents grouped search results
type SearchResponse struct {
	Results []SearchItem `json:"results"`
	Count   int          `json:"count"`
	Total   int          `json:"total"` // Matching strings before the limit
	Query   string       `json:"query"`
}

// MatchResponse lists distinct strings containing the query
type MatchResponse struct {
	Matches []string `json:"matches"`
	Count   int      `json:"count"`
	Query   string   `json:"query"`
}

// RankResponse reports how many suffixes sort before the query
type RankResponse struct {
	Query string `json:"query"`
	Rank  int    `json:"rank"`
}

// SelectResponse holds the suffix at a given rank
type SelectResponse struct {
	Rank   int    `json:"rank"`
	Suffix string `json:"suffix"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
