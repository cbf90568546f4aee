package models

import (
	"time"

	"github.com/gocql/gocql"
)

type MediaItem struct {
	ID        gocql.UUID `json:"id" db:"media_id"`
	FileName  string     `json:"file_name" db:"file_name"`
	FileURL   string     `json:"file_url" db:"file_url"`
	FileType  string     `json:"file_type" db:"file_type"`
	FileSize  int64      `json:"file_size" db:"file_size"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}
