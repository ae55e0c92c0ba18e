package entity

import "github.com/shopspring/decimal"

// SaleItem línea de una venta. UnitPrice es la foto del precio al vender; inmutable.
type SaleItem struct {
	ID         string
	SaleID     string
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal // Quantity × UnitPrice

	// Solo lectura (JOIN con products).
	ProductName    string
	WholesalePrice decimal.Decimal
}

// NewSaleItem construye la línea calculando TotalPrice.
func NewSaleItem(id, saleID, productID string, quantity, unitPrice decimal.Decimal) *SaleItem {
	return &SaleItem{
		ID:         id,
		SaleID:     saleID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: quantity.Mul(unitPrice),
	}
}

// Cost costo de la línea al precio de compra actual del producto.
func (i *SaleItem) Cost() decimal.Decimal {
	return i.WholesalePrice.Mul(i.Quantity)
}

// Profit (precio de venta - precio de compra) × cantidad.
func (i *SaleItem) Profit() decimal.Decimal {
	return i.UnitPrice.Sub(i.WholesalePrice).Mul(i.Quantity)
}
