package models

import "time"

// Response is one employee's single submission for one survey. The composite
// unique index is the duplicate-submission gate: a second insert for the same
// (survey, employee) pair fails at the store instead of being pre-checked.
type Response struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SurveyID    uint      `gorm:"column:survey_id;not null;uniqueIndex:idx_responses_survey_employee" json:"survey_id"`
	EmployeeID  uint      `gorm:"column:employee_id;not null;uniqueIndex:idx_responses_survey_employee" json:"employee_id"`
	SubmittedAt time.Time `gorm:"column:submitted_at;autoCreateTime" json:"submitted_at"`

	Items []ResponseItem `gorm:"foreignKey:ResponseID" json:"-"`
}

func (Response) TableName() string {
	return "responses"
}
