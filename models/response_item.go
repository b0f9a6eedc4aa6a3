package models

type ResponseItem struct {
	ID          uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ResponseID  uint     `gorm:"column:response_id;not null;index" json:"response_id"`
	Response    Response `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionID  uint     `gorm:"column:question_id;not null" json:"question_id"`
	Question    Question `gorm:"foreignKey:QuestionID" json:"-"`
	RawScore    int      `gorm:"column:raw_score;not null" json:"raw_score"`
	ScoredScore int      `gorm:"column:scored_score;not null" json:"scored_score"`
}

func (ResponseItem) TableName() string {
	return "response_items"
}
