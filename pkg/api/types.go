package api

type ListSourcesResponseItem struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type ListSourcesResponse = []ListSourcesResponseItem

type GetSourceResponse struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Size        int64  `json:"size"`
	Lines       int64  `json:"lines"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// GetSourceTailRequest selects the tail of a source. Both fields take the
// same specifications as the -n and -c flags of tailr. Bytes wins when both
// are given.
type GetSourceTailRequest struct {
	Lines string `query:"lines"`
	Bytes string `query:"bytes"`
}
