package models

type Department struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"column:name;size:100;uniqueIndex;not null" json:"name"`
	IsActive  bool   `gorm:"column:is_active;default:true" json:"is_active"`
	SortOrder int    `gorm:"column:sort_order;default:0" json:"sort_order"`

	Employees []Employee `gorm:"foreignKey:DepartmentID" json:"-"`
}

func (Department) TableName() string {
	return "departments"
}
