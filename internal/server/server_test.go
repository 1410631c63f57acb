// server_test.go
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

package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rustaman1280/tefacontoh/internal/config"
	"github.com/Rustaman1280/tefacontoh/internal/server"
	"github.com/Rustaman1280/tefacontoh/internal/services"
	"github.com/Rustaman1280/tefacontoh/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{CORSOrigins: "*", JWTSecret: "test-secret"}
	app := server.New(server.Deps{
		Config:   cfg,
		DB:       db,
		Logger:   zap.NewNop(),
		Services: services.New(db, zap.NewNop(), services.Options{JWTSecret: cfg.JWTSecret}),
	})
	return &apiClient{t: t, app: app}
}

func (a *apiClient) do(method, path string, body interface{}) *http.Response {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(a.t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

// login registers an account and keeps its token for later requests.
func (a *apiClient) login() {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Admin Sekolah",
		"email":    "admin@school.test",
		"password": "rahasia1",
	})
	testutil.AssertStatus(a.t, resp, http.StatusCreated)
	var res struct {
		Token string `json:"token"`
	}
	env := testutil.ParseEnvelope(a.t, resp, &res)
	require.True(a.t, env.Success)
	require.NotEmpty(a.t, res.Token)
	a.token = res.Token
}

func (a *apiClient) create(path string, body interface{}) string {
	a.t.Helper()
	resp := a.do(http.MethodPost, path, body)
	testutil.AssertStatus(a.t, resp, http.StatusCreated)
	var created struct {
		ID string `json:"id"`
	}
	testutil.ParseEnvelope(a.t, resp, &created)
	require.NotEmpty(a.t, created.ID)
	return created.ID
}

func TestHealth(t *testing.T) {
	api := newAPI(t)

	resp := api.do(http.MethodGet, "/api/health", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var body struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		Timestamp string `json:"timestamp"`
	}
	testutil.ParseJSON(t, resp, &body)
	assert.True(t, body.Success)
	assert.Equal(t, "School inventory API is running", body.Message)
	assert.NotEmpty(t, body.Timestamp)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newAPI(t)

	resp := api.do(http.MethodGet, "/api/assets", nil)
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	env := testutil.ParseEnvelope(t, resp, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "Not authorized, no token", env.Message)

	api.token = "garbage"
	resp = api.do(http.MethodGet, "/api/dashboard/stats", nil)
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	env = testutil.ParseEnvelope(t, resp, nil)
	assert.Equal(t, "Not authorized, token failed", env.Message)
}

func TestAuthFlow(t *testing.T) {
	api := newAPI(t)
	api.login()

	resp := api.do(http.MethodGet, "/api/auth/me", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var me struct {
		Email    string `json:"email"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	testutil.ParseEnvelope(t, resp, &me)
	assert.Equal(t, "admin@school.test", me.Email)
	assert.Equal(t, "user", me.Role)
	assert.Empty(t, me.Password)

	api.token = ""
	resp = api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@school.test", "password": "salah123"})
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	env := testutil.ParseEnvelope(t, resp, nil)
	assert.Equal(t, "Invalid credentials", env.Message)

	resp = api.do(http.MethodPost, "/api/auth/register", map[string]string{"name": "X", "email": "bukan-email"})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	env = testutil.ParseEnvelope(t, resp, nil)
	assert.Contains(t, env.Message, "password is required")
	assert.Contains(t, env.Message, "email must be a valid email")

	resp = api.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Panjang",
		"email":    "panjang@school.test",
		"password": strings.Repeat("a", 80),
	})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	env = testutil.ParseEnvelope(t, resp, nil)
	assert.Equal(t, "password must be at most 72 characters", env.Message)
}

func TestAssetEndpoints(t *testing.T) {
	api := newAPI(t)
	api.login()

	categoryID := api.create("/api/categories", map[string]string{"name": "Elektronik"})
	for i := 1; i <= 15; i++ {
		api.create("/api/assets", map[string]interface{}{
			"name":          fmt.Sprintf("Komputer %02d", i),
			"category_id":   categoryID,
			"quantity_good": "2",
			"quantity_fair": 1,
		})
	}

	resp := api.do(http.MethodGet, "/api/assets?page=2&limit=10&sortBy=name&order=ASC", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var page []struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	env := testutil.ParseEnvelope(t, resp, &page)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 15, env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 10, env.Pagination.Limit)
	assert.Equal(t, 2, env.Pagination.TotalPages)
	require.Len(t, page, 5)
	assert.Equal(t, "Komputer 11", page[0].Name)
	assert.Equal(t, 3, page[0].Quantity)

	resp = api.do(http.MethodGet, "/api/assets?search=KOMPUTER%2001", nil)
	env = testutil.ParseEnvelope(t, resp, nil)
	assert.EqualValues(t, 1, env.Pagination.Total)

	resp = api.do(http.MethodDelete, "/api/categories/"+categoryID, nil)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	env = testutil.ParseEnvelope(t, resp, nil)
	assert.Equal(t, "Cannot delete category. 15 asset(s) are using this category.", env.Message)
}

func TestAssetLifecycle(t *testing.T) {
	api := newAPI(t)
	api.login()

	id := api.create("/api/assets", map[string]interface{}{
		"name":           "Proyektor",
		"inventory_code": "INV-77",
		"purchase_price": "2500000",
		"purchase_date":  "2024-07-01",
	})

	resp := api.do(http.MethodGet, "/api/assets/"+id, nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var got struct {
		Name          string          `json:"name"`
		PurchasePrice json.RawMessage `json:"purchase_price"`
		Logs          []struct {
			Action string `json:"action"`
		} `json:"logs"`
	}
	testutil.ParseEnvelope(t, resp, &got)
	assert.Equal(t, "Proyektor", got.Name)
	require.Len(t, got.Logs, 1)
	assert.Equal(t, "create", got.Logs[0].Action)

	resp = api.do(http.MethodPut, "/api/assets/"+id, map[string]interface{}{"name": "Proyektor Epson", "quantity_damaged": 1})
	testutil.AssertStatus(t, resp, http.StatusOK)
	env := testutil.ParseEnvelope(t, resp, nil)
	assert.Equal(t, "Asset updated successfully", env.Message)

	resp = api.do(http.MethodGet, "/api/assets/"+id+"/logs", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	env = testutil.ParseEnvelope(t, resp, nil)
	assert.EqualValues(t, 2, env.Pagination.Total)

	resp = api.do(http.MethodDelete, "/api/assets/"+id, nil)
	testutil.AssertStatus(t, resp, http.StatusOK)

	resp = api.do(http.MethodGet, "/api/assets/"+id, nil)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	env = testutil.ParseEnvelope(t, resp, nil)
	assert.Equal(t, "Asset not found", env.Message)
}

func TestAssetValidation(t *testing.T) {
	api := newAPI(t)
	api.login()

	cases := []struct {
		name    string
		body    interface{}
		message string
	}{
		{"malformed", `{"name":`, "Invalid request body"},
		{"missing name", map[string]interface{}{"quantity_good": 1}, "name is required"},
		{"bad condition", map[string]interface{}{"name": "Meja", "condition": "broken"}, "condition must be one of: good fair damaged lost"},
		{"bad id", map[string]interface{}{"name": "Meja", "category_id": "nope"}, "category_id must be a valid id"},
		{"unknown category", map[string]interface{}{"name": "Meja", "category_id": "7b0c6a3e-8d4f-4a5e-9c1b-2f3e4d5c6b7a"}, "Category not found"},
		{"bad date", map[string]interface{}{"name": "Meja", "purchase_date": "kemarin"}, "purchase_date must be a date (YYYY-MM-DD)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := api.do(http.MethodPost, "/api/assets", tc.body)
			testutil.AssertStatus(t, resp, http.StatusBadRequest)
			env := testutil.ParseEnvelope(t, resp, nil)
			assert.False(t, env.Success)
			assert.Equal(t, tc.message, env.Message)
		})
	}

	resp := api.do(http.MethodGet, "/api/assets", nil)
	env := testutil.ParseEnvelope(t, resp, nil)
	assert.EqualValues(t, 0, env.Pagination.Total)
}

func TestNotFound(t *testing.T) {
	api := newAPI(t)
	api.login()

	for path, message := range map[string]string{
		"/api/assets/not-a-uuid":                                "Asset not found",
		"/api/locations/7b0c6a3e-8d4f-4a5e-9c1b-2f3e4d5c6b7a":   "Location not found",
		"/api/departments/7b0c6a3e-8d4f-4a5e-9c1b-2f3e4d5c6b7a": "Department not found",
		"/api/item-types/123":                                   "Item type not found",
	} {
		resp := api.do(http.MethodGet, path, nil)
		testutil.AssertStatus(t, resp, http.StatusNotFound)
		env := testutil.ParseEnvelope(t, resp, nil)
		assert.Equal(t, message, env.Message, path)
	}

	resp := api.do(http.MethodGet, "/api/nothing-here", nil)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	env := testutil.ParseEnvelope(t, resp, nil)
	assert.Equal(t, "Route not found", env.Message)
}

func TestLocationEndpoints(t *testing.T) {
	api := newAPI(t)
	api.login()

	deptID := api.create("/api/departments", map[string]interface{}{
		"code":                    "TKJ",
		"name":                    "Teknik Komputer dan Jaringan",
		"total_classes_per_grade": 3,
		"total_labs":              2,
	})

	resp := api.do(http.MethodPost, "/api/locations/bulk", map[string]interface{}{
		"department_id":  deptID,
		"create_labs":    true,
		"create_classes": "true",
	})
	testutil.AssertStatus(t, resp, http.StatusCreated)
	var locations []json.RawMessage
	env := testutil.ParseEnvelope(t, resp, &locations)
	assert.Equal(t, "Created 11 locations for Teknik Komputer dan Jaringan", env.Message)
	assert.Len(t, locations, 11)

	resp = api.do(http.MethodGet, "/api/locations/grouped", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var grouped struct {
		Department map[string]struct {
			Labs []json.RawMessage `json:"labs"`
		} `json:"department"`
		Class map[string]struct {
			Classes []json.RawMessage `json:"classes"`
		} `json:"class"`
	}
	testutil.ParseEnvelope(t, resp, &grouped)
	assert.Len(t, grouped.Department["TKJ"].Labs, 2)
	assert.Len(t, grouped.Class["TKJ"].Classes, 9)

	resp = api.do(http.MethodDelete, "/api/departments/"+deptID, nil)
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	env = testutil.ParseEnvelope(t, resp, nil)
	assert.Equal(t, "Cannot delete department. 11 location(s) are linked to this department.", env.Message)

	resp = api.do(http.MethodGet, "/api/departments/"+deptID+"/summary", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)

	resp = api.do(http.MethodGet, "/api/dashboard/stats", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var stats struct {
		TotalLocations int64 `json:"totalLocations"`
		TotalUsers     int64 `json:"totalUsers"`
	}
	testutil.ParseEnvelope(t, resp, &stats)
	assert.EqualValues(t, 11, stats.TotalLocations)
	assert.EqualValues(t, 1, stats.TotalUsers)
}

func TestMetricsEndpoint(t *testing.T) {
	api := newAPI(t)
	api.do(http.MethodGet, "/api/health", nil)

	resp := api.do(http.MethodGet, "/metrics", nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}
