package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON y valida las etiquetas validate. Si falla, ya respondió 400
// y devuelve ok=false junto al error de escritura (si lo hubo).
func parseBody(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	return validateStruct(c, dst)
}

// parseQuery igual que parseBody para la query string.
func parseQuery(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.QueryParser(dst); err != nil {
		return false, badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	return validateStruct(c, dst)
}

func validateStruct(c *fiber.Ctx, dst any) (bool, error) {
	err := validate.Struct(dst)
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false, badRequest(c, "VALIDATION", err.Error())
	}
	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe.Namespace())] = fe.Tag()
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "datos inválidos",
		Details: map[string]any{"fields": fields},
	})
}

// fieldPath quita el nombre del struct raíz: "CreateSaleRequest.items[0].product_id" -> "items[0].product_id".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// pathID lee :id de la ruta. Un id que no es UUID no puede existir: NotFound.
func pathID(c *fiber.Ctx, resource string) (string, error) {
	id := c.Params("id")
	if err := validate.Var(id, "required,uuid"); err != nil {
		return "", domain.NotFound(resource, id)
	}
	return id, nil
}
