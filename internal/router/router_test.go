// internal/router/router_test.go
package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkpharma/asset-registry/internal/config"
	"github.com/dkpharma/asset-registry/internal/models"
	"github.com/dkpharma/asset-registry/internal/relay"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Department{}, &models.User{}, &models.Plant{}, &models.Area{},
		&models.AssetCategory{}, &models.AssetSubCategory{}, &models.ConsumableCategory{},
		&models.SpecificationCategory{}, &models.Asset{}, &models.AssetGeneralInfo{},
		&models.AssetComponent{}, &models.AssetSpecification{}, &models.AssetAttachment{},
		&models.ConnectLog{},
	))

	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		AuthService: config.AuthServiceConfig{BaseURL: "http://127.0.0.1:0", Timeout: 1},
	}

	hub := relay.NewHub()
	syncer := NewIdentitySyncer(db, cfg)
	r := Initialize(db, cfg, hub, syncer)

	// Seed a login account
	user := models.User{EmployeeCode: "1001", Name: "Alex", Email: "alex@example.com"}
	require.NoError(t, user.SetPassword("secret-password"))
	require.NoError(t, db.Create(&user).Error)

	return &testAPI{t: t, router: r}
}

func (a *testAPI) login(employeeCode, password string) {
	resp := a.do(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"employee_code": employeeCode,
		"password":      password,
	}, http.StatusOK)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(resp.Data, &login))
	require.NotEmpty(a.t, login.Token)
	a.token = login.Token
}

func (a *testAPI) do(method, path string, body interface{}, wantStatus int) apiEnvelope {
	a.t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	require.Equal(a.t, wantStatus, w.Code, "unexpected status for %s %s: %s", method, path, w.Body.String())

	var envelope apiEnvelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

// Walks the whole registry through the HTTP surface: auth, classification
// setup, the asset aggregate, guarded deletes and the cascade.
func TestRegistryLifecycle(t *testing.T) {
	api := newTestAPI(t)

	// No token, no access
	resp := api.do(http.MethodGet, "/api/v1/plants", nil, http.StatusUnauthorized)
	assert.False(t, resp.Success)

	api.login("1001", "secret-password")

	// Account lookup by employee code
	resp = api.do(http.MethodGet, "/api/v1/users/code/1001", nil, http.StatusOK)
	var account models.User
	require.NoError(t, json.Unmarshal(resp.Data, &account))
	assert.Equal(t, "Alex", account.Name)

	// Plant and area
	resp = api.do(http.MethodPost, "/api/v1/plants", map[string]interface{}{
		"code": "P1", "name": "Main Plant",
	}, http.StatusCreated)
	var plant models.Plant
	require.NoError(t, json.Unmarshal(resp.Data, &plant))

	// Duplicate plant codes are rejected, missing names never reach the store
	resp = api.do(http.MethodPost, "/api/v1/plants", map[string]interface{}{
		"code": "P1", "name": "Clone",
	}, http.StatusConflict)
	assert.Equal(t, "Plant code already exists", resp.Message)
	assert.Equal(t, "CONFLICT", resp.Error)

	resp = api.do(http.MethodPost, "/api/v1/plants", map[string]interface{}{
		"code": "P2",
	}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error)

	resp = api.do(http.MethodPost, "/api/v1/areas", map[string]interface{}{
		"plant_id": plant.ID, "code": "A1", "name": "Filling",
	}, http.StatusCreated)
	var area models.Area
	require.NoError(t, json.Unmarshal(resp.Data, &area))

	// Classification with generated sub-category code
	resp = api.do(http.MethodPost, "/api/v1/categories", map[string]interface{}{
		"code": "AB", "name": "Pumps",
	}, http.StatusCreated)
	var category models.AssetCategory
	require.NoError(t, json.Unmarshal(resp.Data, &category))

	resp = api.do(http.MethodPost, "/api/v1/sub-categories", map[string]interface{}{
		"category_id": category.ID, "name": "Dosing",
	}, http.StatusCreated)
	var subCategory models.AssetSubCategory
	require.NoError(t, json.Unmarshal(resp.Data, &subCategory))
	assert.Equal(t, "AB0001", subCategory.Code)

	// Spec template
	resp = api.do(http.MethodPost, "/api/v1/spec-categories", map[string]interface{}{
		"sub_category_id": subCategory.ID, "spec_name": "Flow Rate", "data_type": "number", "unit": "L/min",
	}, http.StatusCreated)
	var spec models.SpecificationCategory
	require.NoError(t, json.Unmarshal(resp.Data, &spec))

	// Asset aggregate
	resp = api.do(http.MethodPost, "/api/v1/assets", map[string]interface{}{
		"asset_code":      "EQ-001",
		"name":            "Dosing Pump",
		"sub_category_id": subCategory.ID,
		"area_id":         area.ID,
		"general_info":    map[string]interface{}{"manufacturer": "Acme"},
		"components": []map[string]interface{}{
			{"component_name": "Motor", "quantity": 2},
			{"component_name": "Seal Kit"},
		},
	}, http.StatusCreated)
	var asset models.Asset
	require.NoError(t, json.Unmarshal(resp.Data, &asset))
	require.NotNil(t, asset.GeneralInfo)
	assert.Len(t, asset.Components, 2)

	// Spec values land through the dedicated endpoint
	api.do(http.MethodPut, fmt.Sprintf("/api/v1/assets/%d/specifications", asset.ID), map[string]interface{}{
		"specifications": []map[string]interface{}{
			{"spec_category_id": spec.ID, "value": "12.5", "numeric_value": 12.5},
		},
	}, http.StatusOK)

	// Lookup by code
	resp = api.do(http.MethodGet, "/api/v1/assets/code/EQ-001", nil, http.StatusOK)
	var byCode models.Asset
	require.NoError(t, json.Unmarshal(resp.Data, &byCode))
	assert.Equal(t, asset.ID, byCode.ID)

	// Guarded delete refuses while the asset exists
	resp = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/areas/%d", area.ID), nil, http.StatusConflict)
	assert.Equal(t, "Cannot delete area. It has 1 asset(s) assigned to it.", resp.Message)
	assert.Equal(t, "CONFLICT", resp.Error)

	// Asset delete cascades, then the area can go
	api.do(http.MethodDelete, fmt.Sprintf("/api/v1/assets/%d", asset.ID), nil, http.StatusOK)
	api.do(http.MethodDelete, fmt.Sprintf("/api/v1/areas/%d", area.ID), nil, http.StatusOK)
}
