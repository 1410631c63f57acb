package models

// Location is a room, lab or classroom that holds assets.
type Location struct {
	Model
	Name           string       `gorm:"size:100;not null" json:"name"`
	MainGroup      MainGroup    `gorm:"size:20;not null;index" json:"main_group"`
	LocationType   LocationType `gorm:"size:20;not null;index" json:"location_type"`
	DepartmentID   *UUID        `gorm:"index" json:"department_id"`
	GradeLevel     *GradeLevel  `gorm:"size:5" json:"grade_level"`
	SequenceNumber *int         `json:"sequence_number"`
	Code           *string      `gorm:"size:50;uniqueIndex" json:"code"`
	Description    *string      `gorm:"type:text" json:"description"`
	Capacity       *int         `json:"capacity"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Assets     []Asset     `gorm:"foreignKey:LocationID" json:"assets,omitempty"`
}

func (Location) TableName() string {
	return "locations"
}
