package models

import "time"

// Record is implemented by the pointer types of every id-keyed model.
type Record interface {
	RecordID() int
	SetRecordID(id int)
	// Stamp refreshes store-managed timestamps; models without timestamps ignore it.
	Stamp(now time.Time)
}
