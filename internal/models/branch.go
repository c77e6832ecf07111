package models

import "time"

type Branch struct {
	ID          int      `gorm:"primaryKey;autoIncrement:false" bson:"id" json:"id"`
	Name        string   `gorm:"size:100;not null" bson:"name" json:"name"`
	Address     string   `gorm:"size:255" bson:"address" json:"address"`
	Phone       string   `gorm:"size:50" bson:"phone" json:"phone"`
	Hours       string   `gorm:"size:255" bson:"hours" json:"hours"`
	Image       string   `gorm:"size:255" bson:"image" json:"image"`
	Description string   `gorm:"type:text" bson:"description" json:"description"`
	Features    []string `gorm:"serializer:json" bson:"features" json:"features"`
	Lat         float64  `bson:"lat" json:"lat"`
	Lng         float64  `bson:"lng" json:"lng"`
}

func (b *Branch) RecordID() int      { return b.ID }
func (b *Branch) SetRecordID(id int) { b.ID = id }
func (b *Branch) Stamp(time.Time)    {}
