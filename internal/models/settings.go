package models

import "time"

type SiteSetting struct {
	Key       string     `json:"key" db:"key"`
	Value     string     `json:"value" db:"value"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}
