package models

type PhoneContact struct {
	Number string `gorm:"size:50" bson:"number" json:"number"`
	Hours  string `gorm:"size:100" bson:"hours" json:"hours"`
}

type EmailContact struct {
	Address string `gorm:"size:100" bson:"address" json:"address"`
	Hours   string `gorm:"size:100" bson:"hours" json:"hours"`
}

type KakaoContact struct {
	ID    string `gorm:"size:100" bson:"id" json:"id"`
	Hours string `gorm:"size:100" bson:"hours" json:"hours"`
}

// Contact is the singleton contact block shown in the site footer.
type Contact struct {
	Phone PhoneContact `gorm:"embedded;embeddedPrefix:phone_" bson:"phone" json:"phone"`
	Email EmailContact `gorm:"embedded;embeddedPrefix:email_" bson:"email" json:"email"`
	Kakao KakaoContact `gorm:"embedded;embeddedPrefix:kakao_" bson:"kakao" json:"kakao"`
}
