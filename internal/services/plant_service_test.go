// internal/services/plant_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/models"
)

func TestPlantCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlantService(db)

	plant, err := svc.CreatePlant(&CreatePlantRequest{Code: "P1", Name: "Main Plant"})
	require.NoError(t, err)
	assert.NotZero(t, plant.ID)
	assert.Equal(t, "P1", plant.Code)

	// Duplicate code is refused
	_, err = svc.CreatePlant(&CreatePlantRequest{Code: "P1", Name: "Other"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	// Partial update leaves untouched fields alone
	updated, err := svc.UpdatePlant(plant.ID, &UpdatePlantRequest{Name: strPtr("Renamed Plant")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Plant", updated.Name)
	assert.Equal(t, "P1", updated.Code)

	_, err = svc.GetPlant(9999)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	require.NoError(t, svc.DeletePlant(plant.ID))
	_, err = svc.GetPlant(plant.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeletePlantBlockedByAreas(t *testing.T) {
	db := newTestDB(t)
	plantSvc := NewPlantService(db)
	areaSvc := NewAreaService(db)

	plant, err := plantSvc.CreatePlant(&CreatePlantRequest{Code: "P1", Name: "Main"})
	require.NoError(t, err)

	_, err = areaSvc.CreateArea(&CreateAreaRequest{PlantID: plant.ID, Code: "A1", Name: "Filling"})
	require.NoError(t, err)
	_, err = areaSvc.CreateArea(&CreateAreaRequest{PlantID: plant.ID, Code: "A2", Name: "Packing"})
	require.NoError(t, err)

	err = plantSvc.DeletePlant(plant.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.EqualError(t, err, "Cannot delete plant. It has 2 area(s) assigned to it.")

	// Still present
	_, err = plantSvc.GetPlant(plant.ID)
	assert.NoError(t, err)
}

func TestAreaCRUD(t *testing.T) {
	db := newTestDB(t)
	plantSvc := NewPlantService(db)
	areaSvc := NewAreaService(db)

	// Area creation requires an existing plant
	_, err := areaSvc.CreateArea(&CreateAreaRequest{PlantID: 42, Code: "A1", Name: "Filling"})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	plant, err := plantSvc.CreatePlant(&CreatePlantRequest{Code: "P1", Name: "Main"})
	require.NoError(t, err)

	area, err := areaSvc.CreateArea(&CreateAreaRequest{PlantID: plant.ID, Code: "A1", Name: "Filling"})
	require.NoError(t, err)
	require.NotNil(t, area.Plant)
	assert.Equal(t, "P1", area.Plant.Code)

	// Moving to a nonexistent plant is refused
	_, err = areaSvc.UpdateArea(area.ID, &UpdateAreaRequest{PlantID: uintPtr(42)})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	// Filtered listing
	other, err := plantSvc.CreatePlant(&CreatePlantRequest{Code: "P2", Name: "Second"})
	require.NoError(t, err)
	_, err = areaSvc.CreateArea(&CreateAreaRequest{PlantID: other.ID, Code: "B1", Name: "Storage"})
	require.NoError(t, err)

	areas, err := areaSvc.ListAreas(&plant.ID)
	require.NoError(t, err)
	assert.Len(t, areas, 1)
	assert.Equal(t, "A1", areas[0].Code)

	all, err := areaSvc.ListAreas(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteAreaBlockedByAssets(t *testing.T) {
	db := newTestDB(t)
	areaSvc := NewAreaService(db)

	plant := models.Plant{Code: "P1", Name: "Main"}
	require.NoError(t, db.Create(&plant).Error)
	area := models.Area{PlantID: plant.ID, Code: "A1", Name: "Filling"}
	require.NoError(t, db.Create(&area).Error)

	category := models.AssetCategory{Code: "AB", Name: "Pumps"}
	require.NoError(t, db.Create(&category).Error)
	subCategory := models.AssetSubCategory{CategoryID: category.ID, Code: "AB0001", Name: "Dosing"}
	require.NoError(t, db.Create(&subCategory).Error)

	asset := models.Asset{AssetCode: "EQ-001", Name: "Pump", SubCategoryID: subCategory.ID, AreaID: &area.ID, Status: models.AssetStatusActive}
	require.NoError(t, db.Create(&asset).Error)

	err := areaSvc.DeleteArea(area.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "Cannot delete area. It has 1 asset(s) assigned to it.")
}
