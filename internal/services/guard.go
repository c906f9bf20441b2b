// internal/services/guard.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/models"
)

// GuardedEntity enumerates the reference types whose deletion is refused while
// dependent children exist. Asset deletion is deliberately not here: assets
// cascade to their owned rows instead. The asymmetry is product behavior, not
// an accident.
type GuardedEntity string

const (
	GuardedPlant        GuardedEntity = "plant"
	GuardedArea         GuardedEntity = "area"
	GuardedCategory     GuardedEntity = "category"
	GuardedSubCategory  GuardedEntity = "sub category"
	GuardedSpecCategory GuardedEntity = "specification category"
)

// DeleteGuard performs the read-then-decide dependent check before a guarded
// delete. It never deletes anything itself. The check-then-delete window is a
// known race: a concurrent insert can slip between the count and the delete.
type DeleteGuard struct {
	db *gorm.DB
}

func NewDeleteGuard(db *gorm.DB) *DeleteGuard {
	return &DeleteGuard{db: db}
}

type GuardResult struct {
	Allowed  bool
	Blocking int64
	// ChildNoun names the dependent type for the refusal message,
	// e.g. "asset" in "It has 3 asset(s) assigned to it."
	ChildNoun string
}

func (g *DeleteGuard) CanDelete(entity GuardedEntity, id interface{}) (GuardResult, error) {
	var count int64
	var childNoun string
	var err error

	switch entity {
	case GuardedPlant:
		childNoun = "area"
		err = g.db.Model(&models.Area{}).Where("plant_id = ?", id).Count(&count).Error
	case GuardedArea:
		childNoun = "asset"
		err = g.db.Model(&models.Asset{}).Where("area_id = ?", id).Count(&count).Error
	case GuardedCategory:
		childNoun = "sub category"
		err = g.db.Model(&models.AssetSubCategory{}).Where("category_id = ?", id).Count(&count).Error
	case GuardedSubCategory:
		childNoun = "asset"
		err = g.db.Model(&models.Asset{}).Where("sub_category_id = ?", id).Count(&count).Error
	case GuardedSpecCategory:
		childNoun = "asset specification"
		err = g.db.Model(&models.AssetSpecification{}).Where("spec_category_id = ?", id).Count(&count).Error
	default:
		return GuardResult{}, fmt.Errorf("unknown guarded entity: %s", entity)
	}

	if err != nil {
		return GuardResult{}, fmt.Errorf("failed to count dependents of %s: %w", entity, err)
	}

	return GuardResult{
		Allowed:   count == 0,
		Blocking:  count,
		ChildNoun: childNoun,
	}, nil
}

// BlockedMessage renders the refusal in the wording clients depend on.
func (r GuardResult) BlockedMessage(entity GuardedEntity) string {
	return fmt.Sprintf("Cannot delete %s. It has %d %s(s) assigned to it.", entity, r.Blocking, r.ChildNoun)
}
