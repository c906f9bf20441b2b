// internal/services/category_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/models"
)

func TestNextSubCategoryCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	category := models.AssetCategory{Code: "AB", Name: "Pumps"}
	require.NoError(t, db.Create(&category).Error)

	// Empty prefix starts at 0001
	code, err := svc.NextSubCategoryCode("AB")
	require.NoError(t, err)
	assert.Equal(t, "AB0001", code)

	// Gaps do not get reused: max + 1
	require.NoError(t, db.Create(&models.AssetSubCategory{CategoryID: category.ID, Code: "AB0001", Name: "Dosing"}).Error)
	require.NoError(t, db.Create(&models.AssetSubCategory{CategoryID: category.ID, Code: "AB0003", Name: "Vacuum"}).Error)

	code, err = svc.NextSubCategoryCode("AB")
	require.NoError(t, err)
	assert.Equal(t, "AB0004", code)

	// Codes with non-numeric suffixes sharing the prefix are ignored
	require.NoError(t, db.Create(&models.AssetSubCategory{CategoryID: category.ID, Code: "ABX9", Name: "Odd"}).Error)
	code, err = svc.NextSubCategoryCode("AB")
	require.NoError(t, err)
	assert.Equal(t, "AB0004", code)

	// A different prefix has its own sequence
	code, err = svc.NextSubCategoryCode("CD")
	require.NoError(t, err)
	assert.Equal(t, "CD0001", code)
}

func TestCreateSubCategoryGeneratesCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	category, err := svc.CreateCategory(&CreateCategoryRequest{Code: "AB", Name: "Pumps"})
	require.NoError(t, err)

	first, err := svc.CreateSubCategory(&CreateSubCategoryRequest{CategoryID: category.ID, Name: "Dosing"})
	require.NoError(t, err)
	assert.Equal(t, "AB0001", first.Code)

	second, err := svc.CreateSubCategory(&CreateSubCategoryRequest{CategoryID: category.ID, Name: "Vacuum"})
	require.NoError(t, err)
	assert.Equal(t, "AB0002", second.Code)

	_, err = svc.CreateSubCategory(&CreateSubCategoryRequest{CategoryID: 999, Name: "Orphan"})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCategoryUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	_, err := svc.CreateCategory(&CreateCategoryRequest{Code: "AB", Name: "Pumps"})
	require.NoError(t, err)

	// Duplicate code
	_, err = svc.CreateCategory(&CreateCategoryRequest{Code: "AB", Name: "Valves"})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	// Duplicate name
	_, err = svc.CreateCategory(&CreateCategoryRequest{Code: "CD", Name: "Pumps"})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestSubCategoryCodeImmutable(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	category, err := svc.CreateCategory(&CreateCategoryRequest{Code: "AB", Name: "Pumps"})
	require.NoError(t, err)
	subCategory, err := svc.CreateSubCategory(&CreateSubCategoryRequest{CategoryID: category.ID, Name: "Dosing"})
	require.NoError(t, err)

	updated, err := svc.UpdateSubCategory(subCategory.ID, &UpdateSubCategoryRequest{Name: strPtr("Dosing Pumps")})
	require.NoError(t, err)
	assert.Equal(t, "Dosing Pumps", updated.Name)
	assert.Equal(t, "AB0001", updated.Code)
}

func TestDeleteCategoryGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	category, err := svc.CreateCategory(&CreateCategoryRequest{Code: "AB", Name: "Pumps"})
	require.NoError(t, err)
	subCategory, err := svc.CreateSubCategory(&CreateSubCategoryRequest{CategoryID: category.ID, Name: "Dosing"})
	require.NoError(t, err)

	err = svc.DeleteCategory(category.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "Cannot delete category. It has 1 sub category(s) assigned to it.")

	// Sub category with assets is guarded too
	asset := models.Asset{AssetCode: "EQ-001", Name: "Pump", SubCategoryID: subCategory.ID, Status: models.AssetStatusActive}
	require.NoError(t, db.Create(&asset).Error)

	err = svc.DeleteSubCategory(subCategory.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "Cannot delete sub category. It has 1 asset(s) assigned to it.")

	// Clearing the chain bottom-up succeeds
	require.NoError(t, db.Delete(&asset).Error)
	require.NoError(t, svc.DeleteSubCategory(subCategory.ID))
	require.NoError(t, svc.DeleteCategory(category.ID))
}
