package models

// Exercise is an entry of the shared exercise catalog.
type Exercise struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
