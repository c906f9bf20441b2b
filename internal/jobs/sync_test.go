// internal/jobs/sync_test.go
package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkpharma/asset-registry/internal/authclient"
	"github.com/dkpharma/asset-registry/internal/config"
	"github.com/dkpharma/asset-registry/internal/models"
)

type identityFixture struct {
	users       []authclient.RemoteUser
	departments []authclient.RemoteDepartment
	loginFails  bool
}

func (f *identityFixture) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if f.loginFails {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "test-token"})
	})
	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(f.users)
	})
	mux.HandleFunc("/api/departments", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.departments)
	})
	return mux
}

func newSyncFixture(t *testing.T, fixture *identityFixture) (*IdentitySyncer, *gorm.DB, *httptest.Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Department{}, &models.User{}))

	server := httptest.NewServer(fixture.handler())
	t.Cleanup(server.Close)

	client := authclient.NewClient(&config.AuthServiceConfig{
		BaseURL:      server.URL,
		EmployeeCode: "0596",
		Password:     "service-password",
		Timeout:      5,
	})
	return NewIdentitySyncer(db, client, "default123"), db, server
}

func TestSyncCreatesUsersAndDepartments(t *testing.T) {
	fixture := &identityFixture{
		departments: []authclient.RemoteDepartment{
			{Name: "Maintenance", Description: "Keeps things running", TeamLeader: "Kim"},
		},
		users: []authclient.RemoteUser{
			{EmployeeCode: "1001", Name: "Alex", Email: "alex@example.com", Department: "Maintenance", Position: "Technician"},
			{EmployeeCode: "1002", Name: "Sam", Email: "sam@example.com", Department: "Maintenance"},
		},
	}
	syncer, db, _ := newSyncFixture(t, fixture)

	result, err := syncer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Departments.Total)
	assert.Equal(t, 1, result.Departments.Created)
	assert.Equal(t, 2, result.Users.Total)
	assert.Equal(t, 2, result.Users.Created)
	assert.Equal(t, "test-token", result.Users.Token)

	var user models.User
	require.NoError(t, db.Where("employee_code = ?", "1001").First(&user).Error)
	assert.Equal(t, "Alex", user.Name)
	assert.Equal(t, "Maintenance", user.Department)
}

func TestSyncCreatedUsersGetPlaceholderPassword(t *testing.T) {
	fixture := &identityFixture{
		users: []authclient.RemoteUser{{EmployeeCode: "1001", Name: "Alex"}},
	}
	syncer, db, _ := newSyncFixture(t, fixture)

	_, err := syncer.Run(context.Background())
	require.NoError(t, err)

	// Sync is the only production path that creates accounts, so they must
	// come out able to log in with the placeholder credential.
	var user models.User
	require.NoError(t, db.Where("employee_code = ?", "1001").First(&user).Error)
	require.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "default123", user.PasswordHash)
	assert.True(t, user.CheckPassword("default123"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestSyncIsIdempotent(t *testing.T) {
	fixture := &identityFixture{
		departments: []authclient.RemoteDepartment{{Name: "Maintenance"}},
		users:       []authclient.RemoteUser{{EmployeeCode: "1001", Name: "Alex"}},
	}
	syncer, _, _ := newSyncFixture(t, fixture)

	_, err := syncer.Run(context.Background())
	require.NoError(t, err)

	// Unchanged upstream data counts as skipped, not updated
	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Users.Created)
	assert.Equal(t, 0, result.Users.Updated)
	assert.Equal(t, 1, result.Users.Skipped)
	assert.Equal(t, 1, result.Departments.Skipped)
}

func TestSyncUpdatesOnlyChangedFields(t *testing.T) {
	fixture := &identityFixture{
		departments: []authclient.RemoteDepartment{{Name: "Maintenance"}},
		users:       []authclient.RemoteUser{{EmployeeCode: "1001", Name: "Alex", Position: "Technician"}},
	}
	syncer, db, _ := newSyncFixture(t, fixture)

	_, err := syncer.Run(context.Background())
	require.NoError(t, err)

	hook := logrustest.NewGlobal()
	defer hook.Reset()

	fixture.users[0].Position = "Senior Technician"
	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Users.Updated)

	var user models.User
	require.NoError(t, db.Where("employee_code = ?", "1001").First(&user).Error)
	assert.Equal(t, "Senior Technician", user.Position)
	assert.Equal(t, "Alex", user.Name)

	// The update record names exactly the fields that changed
	var updated *logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Message == "synced user updated" {
			updated = entry
		}
	}
	require.NotNil(t, updated)
	assert.Equal(t, "position", updated.Data["changed_fields"])
}

func TestSyncTrimsWhitespaceBeforeComparing(t *testing.T) {
	fixture := &identityFixture{
		departments: []authclient.RemoteDepartment{{Name: "Maintenance"}},
		users:       []authclient.RemoteUser{{EmployeeCode: "1001", Name: "Alex"}},
	}
	syncer, _, _ := newSyncFixture(t, fixture)

	_, err := syncer.Run(context.Background())
	require.NoError(t, err)

	// Cosmetic whitespace in upstream data is not an update
	fixture.users[0].Name = "  Alex  "
	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Users.Skipped)
	assert.Equal(t, 0, result.Users.Updated)
}

func TestSyncAbortsOnLoginFailure(t *testing.T) {
	fixture := &identityFixture{
		loginFails: true,
		users:      []authclient.RemoteUser{{EmployeeCode: "1001", Name: "Alex"}},
	}
	syncer, db, _ := newSyncFixture(t, fixture)

	_, err := syncer.Run(context.Background())
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSyncTalliesPerRecordErrors(t *testing.T) {
	fixture := &identityFixture{
		departments: []authclient.RemoteDepartment{{Name: ""}},
		users: []authclient.RemoteUser{
			{EmployeeCode: "1001", Name: "Alex"},
			{EmployeeCode: "", Name: "Nameless"},
		},
	}
	syncer, _, _ := newSyncFixture(t, fixture)

	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Users.Created)
	assert.Equal(t, 1, result.Users.Errors)
	assert.Equal(t, 1, result.Departments.Errors)
}
