package mapping

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	lines := make([]models.SaleLine, len(d.LineItems))
	for i, l := range d.LineItems {
		lines[i] = models.SaleLine{Name: l.Name, UnitPrice: l.UnitPrice, Quantity: l.Quantity, IsRedeemed: l.IsRedeemed}
	}
	usage := make([]models.IngredientUsage, len(d.Consumption))
	for i, u := range d.Consumption {
		usage[i] = models.IngredientUsage{IngredientID: u.IngredientID, Quantity: u.Quantity}
	}
	var weather *models.WeatherSnapshot
	if d.WeatherContext != nil {
		weather = &models.WeatherSnapshot{
			Condition:    d.WeatherContext.Condition,
			WeatherCode:  d.WeatherContext.WeatherCode,
			TemperatureC: d.WeatherContext.TemperatureC,
			ObservedAt:   d.WeatherContext.ObservedAt,
		}
	}
	return models.Sale{
		SaleID:          d.SaleID,
		Timestamp:       d.Timestamp,
		SessionID:       d.SessionID,
		Total:           d.Total,
		CostOfGoods:     d.CostOfGoods,
		LineItems:       lines,
		CustomerID:      d.CustomerID,
		StampsEarned:    d.StampsEarned,
		StampsSpent:     d.StampsSpent,
		PaymentMethod:   string(d.PaymentMethod),
		AmountReceived:  d.AmountReceived,
		Change:          d.Change,
		WeatherContext:  weather,
		Consumption:     usage,
		Status:          string(d.Status),
		CreatedBy:       d.CreatedBy,
		VoidReason:      d.VoidReason,
		VoidRequestedBy: d.VoidRequestedBy,
		VoidRequestedAt: d.VoidRequestedAt,
		VoidProcessedBy: d.VoidProcessedBy,
		VoidProcessedAt: d.VoidProcessedAt,
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	lines := make([]domain.SaleLine, len(m.LineItems))
	for i, l := range m.LineItems {
		lines[i] = domain.SaleLine{Name: l.Name, UnitPrice: l.UnitPrice, Quantity: l.Quantity, IsRedeemed: l.IsRedeemed}
	}
	usage := make([]domain.IngredientUsage, len(m.Consumption))
	for i, u := range m.Consumption {
		usage[i] = domain.IngredientUsage{IngredientID: u.IngredientID, Quantity: u.Quantity}
	}
	var weather *domain.WeatherSnapshot
	if m.WeatherContext != nil {
		weather = &domain.WeatherSnapshot{
			Condition:    m.WeatherContext.Condition,
			WeatherCode:  m.WeatherContext.WeatherCode,
			TemperatureC: m.WeatherContext.TemperatureC,
			ObservedAt:   m.WeatherContext.ObservedAt,
		}
	}
	return domain.Sale{
		SaleID:          m.SaleID,
		Timestamp:       m.Timestamp,
		SessionID:       m.SessionID,
		Total:           m.Total,
		CostOfGoods:     m.CostOfGoods,
		LineItems:       lines,
		CustomerID:      m.CustomerID,
		StampsEarned:    m.StampsEarned,
		StampsSpent:     m.StampsSpent,
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		AmountReceived:  m.AmountReceived,
		Change:          m.Change,
		WeatherContext:  weather,
		Consumption:     usage,
		Status:          domain.SaleStatus(m.Status),
		CreatedBy:       m.CreatedBy,
		VoidReason:      m.VoidReason,
		VoidRequestedBy: m.VoidRequestedBy,
		VoidRequestedAt: m.VoidRequestedAt,
		VoidProcessedBy: m.VoidProcessedBy,
		VoidProcessedAt: m.VoidProcessedAt,
	}
}

// ToDomainSaleSlice converts a slice of model Sales to a slice of domain Sales
func ToDomainSaleSlice(ms []models.Sale) []domain.Sale {
	ds := make([]domain.Sale, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSale(m)
	}
	return ds
}
