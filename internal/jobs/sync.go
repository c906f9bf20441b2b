// Package jobs holds the scheduled background work: currently the identity
// sync that mirrors users and departments from the external identity service.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/authclient"
	"github.com/dkpharma/asset-registry/internal/models"
)

// SyncReport tallies one sync run. Errors counts records that failed
// individually; the run itself still completes.
type SyncReport struct {
	Total   int    `json:"total"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Errors  int    `json:"errors"`
	Token   string `json:"token,omitempty"`
}

// SyncResult bundles the per-collection reports of one run.
type SyncResult struct {
	Users       SyncReport `json:"users"`
	Departments SyncReport `json:"departments"`
}

// IdentitySyncer pulls users and departments from the identity service and
// upserts them by natural key (employee code, department name). A login
// failure aborts the run; per-record failures are tallied and skipped.
type IdentitySyncer struct {
	db              *gorm.DB
	client          *authclient.Client
	defaultPassword string
}

// NewIdentitySyncer builds a syncer. Accounts created by the sync get
// defaultPassword as their initial credential so they can log in and change it.
func NewIdentitySyncer(db *gorm.DB, client *authclient.Client, defaultPassword string) *IdentitySyncer {
	if defaultPassword == "" {
		defaultPassword = "default123"
	}
	return &IdentitySyncer{db: db, client: client, defaultPassword: defaultPassword}
}

// Run executes one full sync. Departments go first so user department
// references resolve.
func (s *IdentitySyncer) Run(ctx context.Context) (*SyncResult, error) {
	token, err := s.client.Login(ctx)
	if err != nil {
		return nil, fmt.Errorf("identity sync aborted: %w", err)
	}

	result := &SyncResult{}

	departments, err := s.client.ListDepartments(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("identity sync aborted: %w", err)
	}
	result.Departments = s.syncDepartments(departments)
	result.Departments.Token = token

	users, err := s.client.ListUsers(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("identity sync aborted: %w", err)
	}
	result.Users = s.syncUsers(users)
	result.Users.Token = token

	logrus.WithFields(logrus.Fields{
		"users_total":       result.Users.Total,
		"users_created":     result.Users.Created,
		"users_updated":     result.Users.Updated,
		"users_skipped":     result.Users.Skipped,
		"users_errors":      result.Users.Errors,
		"departments_total": result.Departments.Total,
	}).Info("identity sync completed")

	return result, nil
}

func (s *IdentitySyncer) syncDepartments(remote []authclient.RemoteDepartment) SyncReport {
	report := SyncReport{Total: len(remote)}

	for _, rd := range remote {
		name := strings.TrimSpace(rd.Name)
		if name == "" {
			report.Errors++
			continue
		}

		var existing models.Department
		err := s.db.First(&existing, "name = ?", name).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			department := models.Department{
				Name:        name,
				Description: rd.Description,
				TeamLeader:  rd.TeamLeader,
			}
			if err := s.db.Create(&department).Error; err != nil {
				logrus.WithError(err).WithField("department", name).Warn("failed to create department")
				report.Errors++
				continue
			}
			report.Created++
		case err != nil:
			logrus.WithError(err).WithField("department", name).Warn("failed to look up department")
			report.Errors++
		default:
			updates := departmentDiff(&existing, &rd)
			if len(updates) == 0 {
				report.Skipped++
				continue
			}
			if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
				logrus.WithError(err).WithField("department", name).Warn("failed to update department")
				report.Errors++
				continue
			}
			logrus.WithFields(logrus.Fields{
				"department":     name,
				"changed_fields": strings.Join(diffKeys(updates), ","),
			}).Info("synced department updated")
			report.Updated++
		}
	}
	return report
}

func (s *IdentitySyncer) syncUsers(remote []authclient.RemoteUser) SyncReport {
	report := SyncReport{Total: len(remote)}

	for _, ru := range remote {
		employeeCode := strings.TrimSpace(ru.EmployeeCode)
		if employeeCode == "" {
			report.Errors++
			continue
		}

		var existing models.User
		err := s.db.Where("employee_code = ?", employeeCode).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user := models.User{
				EmployeeCode: employeeCode,
				Name:         ru.Name,
				Email:        ru.Email,
				Department:   ru.Department,
				Position:     ru.Position,
				Avatar:       ru.Avatar,
				PhoneNumber:  ru.PhoneNumber,
				Sex:          ru.Sex,
			}
			// Initial credential; the user changes it after first login.
			if err := user.SetPassword(s.defaultPassword); err != nil {
				logrus.WithError(err).WithField("employee_code", employeeCode).Warn("failed to hash default password")
				report.Errors++
				continue
			}
			if err := s.db.Create(&user).Error; err != nil {
				logrus.WithError(err).WithField("employee_code", employeeCode).Warn("failed to create user")
				report.Errors++
				continue
			}
			report.Created++
		case err != nil:
			logrus.WithError(err).WithField("employee_code", employeeCode).Warn("failed to look up user")
			report.Errors++
		default:
			updates := userDiff(&existing, &ru)
			if len(updates) == 0 {
				report.Skipped++
				continue
			}
			if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
				logrus.WithError(err).WithField("employee_code", employeeCode).Warn("failed to update user")
				report.Errors++
				continue
			}
			logrus.WithFields(logrus.Fields{
				"employee_code":  employeeCode,
				"changed_fields": strings.Join(diffKeys(updates), ","),
			}).Info("synced user updated")
			report.Updated++
		}
	}
	return report
}

// changed compares with surrounding whitespace stripped, so cosmetic upstream
// changes do not count as updates.
func changed(local, remote string) bool {
	return strings.TrimSpace(local) != strings.TrimSpace(remote)
}

// diffKeys lists the column names of a diff in stable order for logging.
func diffKeys(updates map[string]interface{}) []string {
	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func userDiff(local *models.User, remote *authclient.RemoteUser) map[string]interface{} {
	updates := map[string]interface{}{}
	if changed(local.Name, remote.Name) {
		updates["name"] = remote.Name
	}
	if changed(local.Email, remote.Email) {
		updates["email"] = remote.Email
	}
	if changed(local.Department, remote.Department) {
		updates["department"] = remote.Department
	}
	if changed(local.Position, remote.Position) {
		updates["position"] = remote.Position
	}
	if changed(local.Avatar, remote.Avatar) {
		updates["avatar"] = remote.Avatar
	}
	if changed(local.PhoneNumber, remote.PhoneNumber) {
		updates["phone_number"] = remote.PhoneNumber
	}
	if changed(local.Sex, remote.Sex) {
		updates["sex"] = remote.Sex
	}
	return updates
}

func departmentDiff(local *models.Department, remote *authclient.RemoteDepartment) map[string]interface{} {
	updates := map[string]interface{}{}
	if changed(local.Description, remote.Description) {
		updates["description"] = remote.Description
	}
	if changed(local.TeamLeader, remote.TeamLeader) {
		updates["team_leader"] = remote.TeamLeader
	}
	return updates
}
