package model

import "time"

// Profile is a saved database connection, persisted in the local profile
// store so generation runs can refer to it by name.
type Profile struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Driver    string    `json:"driver" db:"driver"`
	DSN       string    `json:"dsn,omitempty" db:"dsn"`
	Schema    string    `json:"schema,omitempty" db:"schema_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
