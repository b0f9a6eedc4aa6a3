package models

import "time"

type Employee struct {
	ID           uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EmployeeCode string     `gorm:"column:employee_code;size:20;uniqueIndex;not null" json:"employee_code"`
	DepartmentID uint       `gorm:"column:department_id;not null" json:"department_id"`
	Department   Department `gorm:"foreignKey:DepartmentID" json:"-"`
	Gender       *string    `gorm:"column:gender;size:20" json:"gender"`
	AgeBand      *string    `gorm:"column:age_band;size:20" json:"age_band"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Responses []Response `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}
