package provider

// SongInfo is the structured result from the remote catalog provider.
type SongInfo struct {
	ID            string
	Name          string
	URI           string
	ExternalURL   string
	AlbumID       string
	AlbumName     string
	AlbumURL      string
	AlbumImageURL string
	Singers       []SingerInfo
}

// SingerInfo is one performing artist as reported by the catalog.
type SingerInfo struct {
	ID   string
	Name string
}
