package models

// Department is a vocational program that owns labs and classrooms.
type Department struct {
	Model
	Code                 string     `gorm:"size:10;not null;uniqueIndex" json:"code"`
	Name                 string     `gorm:"size:100;not null" json:"name"`
	TotalClassesPerGrade int        `gorm:"not null" json:"total_classes_per_grade"`
	TotalLabs            int        `gorm:"not null" json:"total_labs"`
	Description          *string    `gorm:"type:text" json:"description"`
	Locations            []Location `gorm:"foreignKey:DepartmentID" json:"locations,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
