// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/models"
	"github.com/dkpharma/asset-registry/internal/utils"
)

type UserService struct {
	db       *gorm.DB
	tokenTTL int // in hours
}

type LoginRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type UpdateProfileRequest struct {
	Avatar      *string `json:"avatar,omitempty" validate:"omitempty,max=500"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=50"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func NewUserService(db *gorm.DB, tokenTTLHours int) *UserService {
	if tokenTTLHours <= 0 {
		tokenTTLHours = 24
	}
	return &UserService{db: db, tokenTTL: tokenTTLHours}
}

func (s *UserService) ListUsers(department *string, search string) ([]models.User, error) {
	query := s.db.Order("employee_code ASC")
	if department != nil {
		query = query.Where("department = ?", *department)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR employee_code ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("Error fetching user", err)
	}
	return &user, nil
}

func (s *UserService) GetByEmployeeCode(employeeCode string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("employee_code = ?", employeeCode).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("Error fetching user", err)
	}
	return &user, nil
}

// Login checks credentials against the locally stored hash and issues a JWT.
func (s *UserService) Login(req *LoginRequest) (*LoginResult, error) {
	var user models.User
	if err := s.db.Where("employee_code = ?", req.EmployeeCode).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("Invalid employee code or password")
		}
		return nil, apperrors.Internal("Error fetching user", err)
	}

	if user.PasswordHash == "" || !user.CheckPassword(req.Password) {
		return nil, apperrors.Validation("Invalid employee code or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.EmployeeCode, user.Name, s.tokenTTL)
	if err != nil {
		return nil, apperrors.Internal("Error generating token", err)
	}

	return &LoginResult{Token: token, User: &user}, nil
}

func (s *UserService) UpdateProfile(id uint, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("Error fetching user", err)
	}

	updates := map[string]interface{}{}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if len(updates) == 0 {
		return &user, nil
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal("Error updating profile", err)
	}
	return &user, nil
}

func (s *UserService) ChangePassword(id uint, req *ChangePasswordRequest) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal("Error fetching user", err)
	}

	if user.PasswordHash != "" && !user.CheckPassword(req.CurrentPassword) {
		return apperrors.Validation("Current password is incorrect")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return apperrors.Internal("Error hashing password", err)
	}
	if err := s.db.Model(&user).Update("password_hash", user.PasswordHash).Error; err != nil {
		return apperrors.Internal("Error updating password", err)
	}
	return nil
}
