package models

import "time"

type Review struct {
	ID           int       `gorm:"primaryKey;autoIncrement:false" bson:"id" json:"id"`
	BranchID     int       `gorm:"index" bson:"branchId" json:"branchId"`
	BranchName   string    `gorm:"size:100" bson:"branchName" json:"branchName"` // denormalize, not kept in sync
	CustomerName string    `gorm:"size:100;not null" bson:"customerName" json:"customerName"`
	Rating       int       `bson:"rating" json:"rating"`
	Comment      string    `gorm:"type:text" bson:"comment" json:"comment"`
	Image        string    `gorm:"size:255" bson:"image" json:"image"`
	IsActive     bool      `gorm:"index" bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (r *Review) RecordID() int      { return r.ID }
func (r *Review) SetRecordID(id int) { r.ID = id }

func (r *Review) Stamp(now time.Time) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}

const (
	MinRating = 1
	MaxRating = 5
)
