// common.go
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

package handlers

import (
	"strings"

	"github.com/Rustaman1280/tefacontoh/internal/middleware"
	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"github.com/gofiber/fiber/v2"
)

// parseID reads the :id route parameter. A malformed id cannot match any
// row, so it reports the entity as not found.
func parseID(c *fiber.Ctx, entity string) (models.UUID, error) {
	id, err := models.ParseUUID(c.Params("id"))
	if err != nil {
		return models.UUID{}, types.NewNotFoundError(entity)
	}
	return id, nil
}

// parseOptionalID parses an optional id from a query parameter or body field.
func parseOptionalID(raw, field string) (*models.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := models.ParseUUID(raw)
	if err != nil {
		return nil, types.NewValidationError("%s must be a valid id", field)
	}
	return &id, nil
}

// actor returns the authenticated actor; Protected guarantees one exists.
func actor(c *fiber.Ctx) (services.Actor, error) {
	a, ok := middleware.CurrentActor(c)
	if !ok {
		return services.Actor{}, types.NewUnauthorizedError("Not authorized, no token")
	}
	return a, nil
}

// trimmed returns nil for absent or blank optional strings.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
