package models

import "time"

// Image is the database row for a stored binary object.
type Image struct {
	ImageID     string    `db:"image_id"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	Data        []byte    `db:"data"`
	CreatedAt   time.Time `db:"created_at"`
}
