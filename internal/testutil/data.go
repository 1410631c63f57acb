// data.go
//
// A school inventory service with an audit trail and dashboard aggregates
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of tefacontoh.
// tefacontoh is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// tefacontoh is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with tefacontoh.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testutil

import (
	"testing"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"gorm.io/gorm"
)

// CreateCategory inserts a category named name.
func CreateCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return category
}

// CreateDepartment inserts a department with the given provisioning counts.
func CreateDepartment(t *testing.T, db *gorm.DB, code, name string, classesPerGrade, labs int) *models.Department {
	t.Helper()
	department := &models.Department{Code: code, Name: name, TotalClassesPerGrade: classesPerGrade, TotalLabs: labs}
	if err := db.Create(department).Error; err != nil {
		t.Fatalf("Failed to create department: %v", err)
	}
	return department
}

// CreateLocation inserts a location; department may be nil.
func CreateLocation(t *testing.T, db *gorm.DB, name, code string, group models.MainGroup, kind models.LocationType, department *models.Department) *models.Location {
	t.Helper()
	location := &models.Location{Name: name, MainGroup: group, LocationType: kind}
	if code != "" {
		location.Code = &code
	}
	if department != nil {
		location.DepartmentID = department.ID.Ptr()
	}
	if kind == models.LocationTypeClassroom {
		grade := models.GradeX
		location.GradeLevel = &grade
	}
	if err := db.Create(location).Error; err != nil {
		t.Fatalf("Failed to create location: %v", err)
	}
	return location
}

// CreateItemType inserts an item type.
func CreateItemType(t *testing.T, db *gorm.DB, name string, category models.ItemCategory) *models.ItemType {
	t.Helper()
	itemType := &models.ItemType{Name: name, ItemCategory: category}
	if err := db.Create(itemType).Error; err != nil {
		t.Fatalf("Failed to create item type: %v", err)
	}
	return itemType
}
