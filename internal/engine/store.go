// Package engine implements the menu reconciliation core: bulk import,
// export and cross-outlet synchronization of an outlet's menu graph.
// It talks to storage only through the Store interface.
package engine

import (
	"errors"

	"github.com/google/uuid"
	"menu-service/internal/models"
)

// ErrOutletNotFound aborts an operation whose subject outlet does not
// exist; it is the only hard precondition failure in the engine.
var ErrOutletNotFound = errors.New("outlet not found")

// Store is the entity repository consumed by the engine. All reads and
// writes are scoped to a tenant and an outlet; implementations decide
// storage format.
type Store interface {
	OutletExists(tenantID, outletID string) (bool, error)

	ListCategories(tenantID, outletID string) ([]models.Category, error)
	CreateCategory(tenantID string, category *models.Category) error
	UpdateCategory(tenantID string, id uuid.UUID, category *models.Category) error

	ListItems(tenantID, outletID string) ([]models.FoodItem, error)
	CreateItem(tenantID string, item *models.FoodItem) error
	UpdateItem(tenantID string, id uuid.UUID, item *models.FoodItem) error

	ListAddOns(tenantID, outletID string) ([]models.AddOn, error)
	CreateAddOn(tenantID string, addOn *models.AddOn) error
	UpdateAddOn(tenantID string, id uuid.UUID, addOn *models.AddOn) error

	ListCombos(tenantID, outletID string) ([]models.Combo, error)
	CreateCombo(tenantID string, combo *models.Combo) error
}
