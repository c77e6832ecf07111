package models

import "time"

type Slide struct {
	ID          int    `gorm:"primaryKey;autoIncrement:false" bson:"id" json:"id"`
	Image       string `gorm:"size:255" bson:"image" json:"image"`
	Title       string `gorm:"size:255;not null" bson:"title" json:"title"`
	Description string `gorm:"type:text" bson:"description" json:"description"`
	Active      bool   `bson:"active" json:"active"`
}

func (s *Slide) RecordID() int      { return s.ID }
func (s *Slide) SetRecordID(id int) { s.ID = id }
func (s *Slide) Stamp(time.Time)    {}
