package model

import "time"

// BlacklistedID is the exclusion list checked during auto-approval. IDs land
// here through enforcement action elsewhere in the platform; the furnish
// workflow only reads it.
type BlacklistedID struct {
	IDNo      string    `gorm:"type:varchar(20);primaryKey" json:"id_no"`
	Reason    string    `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
