package models

import "time"

// Profile is the one-to-one extension of a User. Handle and UserID are both unique.
type Profile struct {
	ID         string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string       `json:"-" gorm:"uniqueIndex;type:varchar(36);not null"`
	User       *User        `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Handle     string       `json:"handle" gorm:"uniqueIndex;type:varchar(40);not null"`
	Company    string       `json:"company,omitempty" gorm:"type:varchar(255)"`
	Website    string       `json:"website,omitempty" gorm:"type:varchar(255)"`
	Location   string       `json:"location,omitempty" gorm:"type:varchar(255)"`
	Status     string       `json:"status" gorm:"type:varchar(255);not null"`
	Skills     []string     `json:"skills" gorm:"serializer:json;type:text"`
	Experience []Experience `json:"experience" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time    `json:"date"`
	UpdatedAt  time.Time    `json:"-"`
}

// Experience is a work history entry owned by exactly one Profile.
// Seq is a database-assigned sequence; the list is ordered by it descending.
type Experience struct {
	Seq       int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	ID        string `json:"id" gorm:"uniqueIndex;type:varchar(36);not null"`
	ProfileID string `json:"-" gorm:"index;type:varchar(36);not null"`
	Title     string `json:"title" gorm:"type:varchar(255);not null"`
	Company   string `json:"company" gorm:"type:varchar(255);not null"`
	Location  string `json:"location,omitempty" gorm:"type:varchar(255)"`
}
