package api

type ImageURLResponse struct {
	Status

	Filename string `json:"filename,omitempty"`
	URL      string `json:"url,omitempty"`
	Bucket   string `json:"bucket,omitempty"`
}

type ImageListResponse struct {
	Status

	Bucket string   `json:"bucket,omitempty"`
	Count  int      `json:"count"`
	Images []string `json:"images"`
}
