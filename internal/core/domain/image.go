package domain

import "time"

// Image is a stored binary object referenced by items, persons and collections.
type Image struct {
	ImageID     string    `json:"imageID"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
