package gemini

// apiRequest is the generateContent request body.
type apiRequest struct {
	Contents []apiContent `json:"contents"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text"`
}

// apiResponse is the generateContent response body, reduced to the fields
// the app reads.
type apiResponse struct {
	Candidates []apiCandidate `json:"candidates"`
}

type apiCandidate struct {
	Content apiContent `json:"content"`
}
