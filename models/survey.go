package models

import "time"

type Survey struct {
	ID      uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code    string    `gorm:"column:code;size:50;uniqueIndex;not null" json:"code"`
	Name    string    `gorm:"column:name;size:255;not null" json:"name"`
	StartAt time.Time `gorm:"column:start_at;not null" json:"start_at"`
	EndAt   time.Time `gorm:"column:end_at;not null" json:"end_at"`
	Status  string    `gorm:"column:status;size:20;default:'draft'" json:"status"` // draft | open | closed

	Responses []Response `gorm:"foreignKey:SurveyID" json:"-"`
}

func (Survey) TableName() string {
	return "surveys"
}
