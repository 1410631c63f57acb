package models

// Condition is the qualitative state of an asset.
type Condition string

const (
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionDamaged Condition = "damaged"
	// ConditionLost has no quantity bucket; dashboards report its quantity as zero.
	ConditionLost Condition = "lost"
)

// Conditions lists every condition in display order.
var Conditions = []Condition{ConditionGood, ConditionFair, ConditionDamaged, ConditionLost}

// Valid reports whether c is a known condition.
func (c Condition) Valid() bool {
	for _, known := range Conditions {
		if c == known {
			return true
		}
	}
	return false
}

// MainGroup is the top-level classification of a location.
type MainGroup string

const (
	MainGroupSchool     MainGroup = "school"
	MainGroupDepartment MainGroup = "department"
	MainGroupClass      MainGroup = "class"
)

// MainGroups lists every main group in display order.
var MainGroups = []MainGroup{MainGroupSchool, MainGroupDepartment, MainGroupClass}

// LocationType is the physical kind of a location.
type LocationType string

const (
	LocationTypeRoom      LocationType = "room"
	LocationTypeLab       LocationType = "lab"
	LocationTypeClassroom LocationType = "classroom"
)

// CodePrefix returns the prefix used for generated location codes.
func (t LocationType) CodePrefix() string {
	switch t {
	case LocationTypeLab:
		return "LAB"
	case LocationTypeClassroom:
		return "KLS"
	default:
		return "RNG"
	}
}

// GradeLevel is a class year.
type GradeLevel string

const (
	GradeX   GradeLevel = "X"
	GradeXI  GradeLevel = "XI"
	GradeXII GradeLevel = "XII"
)

// GradeLevels lists the grades a department provisions classes for.
var GradeLevels = []GradeLevel{GradeX, GradeXI, GradeXII}

// ItemCategory groups item types by where they are used.
type ItemCategory string

const (
	ItemCategoryDepartment ItemCategory = "department"
	ItemCategoryClass      ItemCategory = "class"
	ItemCategoryGeneral    ItemCategory = "general"
)

// Role is a user's access role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Action is the kind of mutation recorded in a transaction log.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)
