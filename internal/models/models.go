package models

import "time"

type Dataset struct {
	ID        string    `db:"id" json:"dataset_id"`
	Name      string    `db:"name" json:"name"`
	Source    string    `db:"source" json:"source"`
	Checksum  string    `db:"checksum" json:"checksum,omitempty"`
	Rows      int       `db:"row_count" json:"rows"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
