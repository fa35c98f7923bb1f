package dto

import "github.com/shopspring/decimal"

func init() {
	// Los clientes esperan cantidades y montos como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse cuerpo de error HTTP de /api/auth y /api/admin.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InventoryErrorResponse cuerpo de error HTTP de /api/inventory.
type InventoryErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// MessageResponse respuesta con solo un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse respuesta de /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
