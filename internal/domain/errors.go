package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio base. Los errores tipados (*Error) envuelven uno de estos
// para que el caller pueda usar errors.Is sin conocer el detalle.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	ErrEmptySale                = errors.New("la venta no tiene ítems")
	ErrMissingCustomerForCredit = errors.New("la venta a crédito requiere un cliente")
	ErrOverpayment              = errors.New("el abono supera el saldo pendiente")
	ErrNoOutstandingDebt        = errors.New("el cliente no tiene deudas pendientes")
	ErrInUse                    = errors.New("el recurso tiene registros asociados")
	ErrTransaction              = errors.New("fallo al confirmar la transacción")
)

// Kind clasifica un error para que la capa HTTP decida el código de respuesta.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindConflict    Kind = "CONFLICT"
	KindNotFound    Kind = "NOT_FOUND"
	KindTransaction Kind = "TRANSACTION"
)

// Error es un error de dominio estructurado: tipo, error base, y el id/monto
// que lo provocó (suficiente para construir el mensaje al usuario).
type Error struct {
	Kind      Kind
	Err       error
	Resource  string          // product, customer, sale, ...
	ID        string          // id del recurso implicado
	Field     string          // campo inválido (validación)
	Requested decimal.Decimal // cantidad o monto solicitado
	Available decimal.Decimal // stock disponible o saldo pendiente
	Cause     error           // error de infraestructura (TransactionFailure)
}

func (e *Error) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Err, e.Field)
	case e.Kind == KindTransaction && e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Err, e.Cause)
	case e.ID != "" && (!e.Available.IsZero() || !e.Requested.IsZero()):
		return fmt.Sprintf("%s: %s %s (solicitado %s, disponible %s)",
			e.Err, e.Resource, e.ID, e.Requested.String(), e.Available.String())
	case e.ID != "":
		return fmt.Sprintf("%s: %s %s", e.Err, e.Resource, e.ID)
	}
	return e.Err.Error()
}

// Unwrap expone el error base y, si existe, la causa de infraestructura.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// KindOf devuelve el tipo del error de dominio, o "" si err no es *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// ── ValidationError ───────────────────────────────────────────────────────────

// Invalid construye un ValidationError sobre un campo.
func Invalid(field string) *Error {
	return &Error{Kind: KindValidation, Err: ErrInvalidInput, Field: field}
}

// EmptySale venta sin líneas.
func EmptySale() *Error {
	return &Error{Kind: KindValidation, Err: ErrEmptySale}
}

// MissingCustomerForCredit venta a crédito sin cliente.
func MissingCustomerForCredit() *Error {
	return &Error{Kind: KindValidation, Err: ErrMissingCustomerForCredit}
}

// ── ConflictError ─────────────────────────────────────────────────────────────

// InsufficientStock la cantidad pedida supera el stock al momento de validar.
func InsufficientStock(productID string, requested, available decimal.Decimal) *Error {
	return &Error{
		Kind: KindConflict, Err: ErrInsufficientStock,
		Resource: "product", ID: productID, Requested: requested, Available: available,
	}
}

// OverpaymentRejected el abono supera el saldo pendiente de la venta.
func OverpaymentRejected(saleID string, requested, remaining decimal.Decimal) *Error {
	return &Error{
		Kind: KindConflict, Err: ErrOverpayment,
		Resource: "sale", ID: saleID, Requested: requested, Available: remaining,
	}
}

// NoOutstandingDebt el cliente no tiene ventas abiertas contra las que aplicar un pago.
func NoOutstandingDebt(customerID string) *Error {
	return &Error{Kind: KindConflict, Err: ErrNoOutstandingDebt, Resource: "customer", ID: customerID}
}

// InUse el recurso no puede eliminarse porque otros registros lo referencian.
func InUse(resource, id string) *Error {
	return &Error{Kind: KindConflict, Err: ErrInUse, Resource: resource, ID: id}
}

// ── NotFoundError ─────────────────────────────────────────────────────────────

// NotFound id desconocido.
func NotFound(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Err: ErrNotFound, Resource: resource, ID: id}
}

// ── TransactionFailure ────────────────────────────────────────────────────────

// TransactionFailure el almacén rechazó el commit; la transacción se revirtió completa.
func TransactionFailure(cause error) *Error {
	return &Error{Kind: KindTransaction, Err: ErrTransaction, Cause: cause}
}
