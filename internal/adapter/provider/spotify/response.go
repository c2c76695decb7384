package spotify

// apiTrack represents a track object from the Spotify Web API.
type apiTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	URI          string          `json:"uri"`
	ExternalURLs apiExternalURLs `json:"external_urls"`
	Album        apiAlbum        `json:"album"`
	Artists      []apiArtist     `json:"artists"`
}

type apiAlbum struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	ExternalURLs apiExternalURLs `json:"external_urls"`
	Images       []apiImage      `json:"images"`
}

type apiArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiImage struct {
	URL string `json:"url"`
}

type apiExternalURLs struct {
	Spotify string `json:"spotify"`
}

// apiTokenGrant is the client-credentials token response from the
// accounts service.
type apiTokenGrant struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
