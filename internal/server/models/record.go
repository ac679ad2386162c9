package models

import "time"

// ReadingRecord is one upload event: the stored file, its generated
// interpretation, and any annotations the user saved afterwards.
// Immutable except for annotation append.
type ReadingRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	Title          string    `json:"title"`
	Filename       string    `json:"filename"`
	UploadedAt     time.Time `json:"upload_time"`
	Interpretation string    `json:"interpretation"`
	Keywords       string    `json:"keywords"`
	Annotations    []string  `json:"annotations,omitempty"`
}

// RelatedPaper is one entry of the related-reading list returned alongside
// an interpretation.
type RelatedPaper struct {
	Title    string `json:"title"`
	Authors  string `json:"authors,omitempty"`
	Journal  string `json:"journal"`
	Year     string `json:"year,omitempty"`
	DOI      string `json:"doi,omitempty"`
	URL      string `json:"url"`
	Abstract string `json:"abstract,omitempty"`
}
