package model

import "time"

// Request is a standing ask for an item nobody has listed yet.
type Request struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestor_id"`
	Created     time.Time `json:"created"`

	Items []*Item `json:"items"`
}
