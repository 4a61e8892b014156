package mapping

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/models"
)

// ToDomainIngredient converts a model Ingredient to a domain Ingredient
func ToDomainIngredient(m models.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		IngredientID: m.IngredientID,
		Name:         m.Name,
		Unit:         m.Unit,
		Stock:        m.Stock,
		MinStock:     m.MinStock,
		UnitCost:     m.UnitCost,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:     m.CustomerID,
		Name:           m.Name,
		StampBalance:   m.StampBalance,
		TotalPurchases: m.TotalPurchases,
		TotalSpent:     m.TotalSpent,
		LastVisit:      m.LastVisit,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:     d.CustomerID,
		Name:           d.Name,
		StampBalance:   d.StampBalance,
		TotalPurchases: d.TotalPurchases,
		TotalSpent:     d.TotalSpent,
		LastVisit:      d.LastVisit,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCatalogItem converts a model CatalogItem to a domain CatalogItem
func ToDomainCatalogItem(m models.CatalogItem) domain.CatalogItem {
	recipe := make([]domain.RecipeLine, len(m.Recipe))
	for i, r := range m.Recipe {
		recipe[i] = domain.RecipeLine{IngredientID: r.IngredientID, QtyRequired: r.QtyRequired}
	}
	return domain.CatalogItem{
		ProductID:          m.ProductID,
		Name:               m.Name,
		Price:              m.Price,
		Recipe:             recipe,
		PurchaseCost:       m.PurchaseCost,
		GrantsLoyaltyStamp: m.GrantsLoyaltyStamp,
	}
}
