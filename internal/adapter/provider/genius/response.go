package genius

// apiSearchResponse represents the /search response from the Genius API.
type apiSearchResponse struct {
	Response apiSearchBody `json:"response"`
}

type apiSearchBody struct {
	Hits []apiHit `json:"hits"`
}

type apiHit struct {
	Result apiHitResult `json:"result"`
}

type apiHitResult struct {
	URL string `json:"url"`
}
