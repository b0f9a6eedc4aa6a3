package models

type Question struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	QuestionCode string `gorm:"column:question_code;size:20;uniqueIndex;not null" json:"question_code"`
	Scale        string `gorm:"column:scale;size:1;not null" json:"scale"` // A..F
	QuestionText string `gorm:"column:question_text;type:text;not null" json:"question_text"`
	DisplayOrder int    `gorm:"column:display_order;default:0" json:"display_order"`
	IsReverse    bool   `gorm:"column:is_reverse;default:false" json:"is_reverse"`
	IsActive     bool   `gorm:"column:is_active;default:true" json:"is_active"`

	Items []ResponseItem `gorm:"foreignKey:QuestionID" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}
