// internal/services/asset_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/models"
)

type assetFixture struct {
	svc         *AssetService
	subCategory models.AssetSubCategory
	area        models.Area
}

func newAssetFixture(t *testing.T) (*assetFixture, *AssetService) {
	t.Helper()
	db := newTestDB(t)

	plant := models.Plant{Code: "P1", Name: "Main"}
	require.NoError(t, db.Create(&plant).Error)
	area := models.Area{PlantID: plant.ID, Code: "A1", Name: "Filling"}
	require.NoError(t, db.Create(&area).Error)
	category := models.AssetCategory{Code: "AB", Name: "Pumps"}
	require.NoError(t, db.Create(&category).Error)
	subCategory := models.AssetSubCategory{CategoryID: category.ID, Code: "AB0001", Name: "Dosing"}
	require.NoError(t, db.Create(&subCategory).Error)
	department := models.Department{Name: "Maintenance"}
	require.NoError(t, db.Create(&department).Error)

	svc := NewAssetService(db)
	return &assetFixture{svc: svc, subCategory: subCategory, area: area}, svc
}

func TestCreateAssetAggregate(t *testing.T) {
	fx, svc := newAssetFixture(t)

	asset, err := svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-001",
		Name:          "Dosing Pump",
		SubCategoryID: fx.subCategory.ID,
		AreaID:        &fx.area.ID,
		GeneralInfo: &GeneralInfoInput{
			Manufacturer: strPtr("Acme"),
			SerialNumber: strPtr("SN-42"),
		},
		Components: []ComponentInput{
			{ComponentName: "Motor", ComponentCode: strPtr("MOT-1"), Quantity: intPtr(2)},
			{ComponentName: "Seal Kit"},      // quantity defaults to 1
			{ComponentName: "   "},           // blank names are dropped
		},
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, asset.GeneralInfo)
	assert.Equal(t, "Acme", *asset.GeneralInfo.Manufacturer)

	require.Len(t, asset.Components, 2)
	byName := map[string]models.AssetComponent{}
	for _, component := range asset.Components {
		byName[component.ComponentName] = component
	}
	assert.Equal(t, 2, byName["Motor"].Quantity)
	assert.Equal(t, 1, byName["Seal Kit"].Quantity)
}

func TestCreateAssetAlwaysCreatesGeneralInfo(t *testing.T) {
	fx, svc := newAssetFixture(t)

	asset, err := svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-002",
		Name:          "Bare Pump",
		SubCategoryID: fx.subCategory.ID,
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, asset.GeneralInfo)
	assert.Equal(t, asset.ID, asset.GeneralInfo.AssetID)
	assert.Nil(t, asset.GeneralInfo.Manufacturer)
}

func TestCreateAssetConflictAndMissingRefs(t *testing.T) {
	fx, svc := newAssetFixture(t)

	_, err := svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-001",
		Name:          "Pump",
		SubCategoryID: fx.subCategory.ID,
	}, nil)
	require.NoError(t, err)

	_, err = svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-001",
		Name:          "Another",
		SubCategoryID: fx.subCategory.ID,
	}, nil)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	_, err = svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-099",
		Name:          "Ghost",
		SubCategoryID: 999,
	}, nil)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-098",
		Name:          "Lost",
		SubCategoryID: fx.subCategory.ID,
		TeamID:        strPtr("No Such Team"),
	}, nil)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUpdateAssetComponentSemantics(t *testing.T) {
	fx, svc := newAssetFixture(t)

	asset, err := svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-001",
		Name:          "Pump",
		SubCategoryID: fx.subCategory.ID,
		Components: []ComponentInput{
			{ComponentName: "Motor"},
			{ComponentName: "Seal Kit"},
		},
	}, nil)
	require.NoError(t, err)
	require.Len(t, asset.Components, 2)

	// nil components: list untouched
	updated, err := svc.UpdateAsset(asset.ID, &UpdateAssetRequest{Name: strPtr("Pump Mk2")})
	require.NoError(t, err)
	assert.Equal(t, "Pump Mk2", updated.Name)
	assert.Len(t, updated.Components, 2)

	// non-empty components: full replacement
	replacement := []ComponentInput{{ComponentName: "Impeller"}}
	updated, err = svc.UpdateAsset(asset.ID, &UpdateAssetRequest{Components: &replacement})
	require.NoError(t, err)
	require.Len(t, updated.Components, 1)
	assert.Equal(t, "Impeller", updated.Components[0].ComponentName)

	// empty slice: clears the list
	empty := []ComponentInput{}
	updated, err = svc.UpdateAsset(asset.ID, &UpdateAssetRequest{Components: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Components)
}

func TestUpdateAssetGeneralInfoUpsert(t *testing.T) {
	fx, svc := newAssetFixture(t)

	asset, err := svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-001",
		Name:          "Pump",
		SubCategoryID: fx.subCategory.ID,
	}, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateAsset(asset.ID, &UpdateAssetRequest{
		GeneralInfo: &GeneralInfoInput{Manufacturer: strPtr("Acme"), ManufactureYear: intPtr(2021)},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.GeneralInfo)
	assert.Equal(t, "Acme", *updated.GeneralInfo.Manufacturer)
	assert.Equal(t, 2021, *updated.GeneralInfo.ManufactureYear)
	// Still exactly one row per asset
	assert.Equal(t, asset.GeneralInfo.ID, updated.GeneralInfo.ID)
}

func TestCreateAssetRollsBackOnComponentConflict(t *testing.T) {
	fx, svc := newAssetFixture(t)
	db := svc.db

	// Two components sharing a code trip the per-asset unique index partway
	// through the transaction; nothing from the aggregate may survive.
	_, err := svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-001",
		Name:          "Dosing Pump",
		SubCategoryID: fx.subCategory.ID,
		GeneralInfo:   &GeneralInfoInput{Manufacturer: strPtr("Acme")},
		Components: []ComponentInput{
			{ComponentName: "Motor", ComponentCode: strPtr("DUP-1")},
			{ComponentName: "Backup Motor", ComponentCode: strPtr("DUP-1")},
		},
	}, nil)
	require.Error(t, err)

	for _, model := range []interface{}{
		&models.Asset{},
		&models.AssetGeneralInfo{},
		&models.AssetComponent{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestDeleteAssetCascades(t *testing.T) {
	fx, svc := newAssetFixture(t)
	db := svc.db

	spec := models.SpecificationCategory{SubCategoryID: fx.subCategory.ID, SpecName: "Flow", DataType: models.SpecDataTypeNumber, Status: models.AssetStatusActive}
	require.NoError(t, db.Create(&spec).Error)

	asset, err := svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-001",
		Name:          "Pump",
		SubCategoryID: fx.subCategory.ID,
		Components:    []ComponentInput{{ComponentName: "Motor"}},
	}, nil)
	require.NoError(t, err)

	_, err = svc.SetSpecifications(asset.ID, []SpecValueInput{{SpecCategoryID: spec.ID, Value: "12.5"}}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.AssetAttachment{AssetID: asset.ID, FileName: "manual.pdf", FilePath: "attachments/manual.pdf"}).Error)

	require.NoError(t, svc.DeleteAsset(asset.ID))

	for _, model := range []interface{}{
		&models.AssetGeneralInfo{},
		&models.AssetComponent{},
		&models.AssetSpecification{},
		&models.AssetAttachment{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Where("asset_id = ?", asset.ID).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestSetSpecificationsUpsert(t *testing.T) {
	fx, svc := newAssetFixture(t)
	db := svc.db

	spec := models.SpecificationCategory{SubCategoryID: fx.subCategory.ID, SpecName: "Flow", DataType: models.SpecDataTypeNumber, Status: models.AssetStatusActive}
	require.NoError(t, db.Create(&spec).Error)

	otherSub := models.AssetSubCategory{CategoryID: fx.subCategory.CategoryID, Code: "AB0002", Name: "Vacuum"}
	require.NoError(t, db.Create(&otherSub).Error)
	foreignSpec := models.SpecificationCategory{SubCategoryID: otherSub.ID, SpecName: "Pressure", Status: models.AssetStatusActive}
	require.NoError(t, db.Create(&foreignSpec).Error)

	asset, err := svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-001",
		Name:          "Pump",
		SubCategoryID: fx.subCategory.ID,
	}, nil)
	require.NoError(t, err)

	flow := 12.5
	values, err := svc.SetSpecifications(asset.ID, []SpecValueInput{{SpecCategoryID: spec.ID, Value: "12.5", NumericValue: &flow}}, nil)
	require.NoError(t, err)
	require.Len(t, values, 1)

	// Second write for the same spec updates in place
	values, err = svc.SetSpecifications(asset.ID, []SpecValueInput{{SpecCategoryID: spec.ID, Value: "15"}}, nil)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "15", values[0].Value)

	// A spec category from another sub-category is rejected
	_, err = svc.SetSpecifications(asset.ID, []SpecValueInput{{SpecCategoryID: foreignSpec.ID, Value: "3"}}, nil)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestListAssetsFilters(t *testing.T) {
	fx, svc := newAssetFixture(t)
	db := svc.db

	otherSub := models.AssetSubCategory{CategoryID: fx.subCategory.CategoryID, Code: "AB0002", Name: "Vacuum"}
	require.NoError(t, db.Create(&otherSub).Error)

	_, err := svc.CreateAsset(&CreateAssetRequest{AssetCode: "EQ-001", Name: "Dosing Pump", SubCategoryID: fx.subCategory.ID, AreaID: &fx.area.ID}, nil)
	require.NoError(t, err)
	_, err = svc.CreateAsset(&CreateAssetRequest{AssetCode: "EQ-002", Name: "Vacuum Pump", SubCategoryID: otherSub.ID}, nil)
	require.NoError(t, err)

	assets, total, err := svc.ListAssets(&AssetFilter{SubCategoryID: &fx.subCategory.ID}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, assets, 1)
	assert.Equal(t, "EQ-001", assets[0].AssetCode)

	assets, total, err = svc.ListAssets(&AssetFilter{CategoryID: &fx.subCategory.CategoryID}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, assets, 2)

	assets, _, err = svc.ListAssets(&AssetFilter{AssetCode: "EQ-002"}, nil)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Vacuum Pump", assets[0].Name)
}
