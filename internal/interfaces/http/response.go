package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
)

// validate instancia compartida; los errores reportan el nombre JSON del campo.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON parsea el cuerpo y valida las etiquetas `validate`.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := parseJSON(c, out); err != nil {
		return err
	}
	return validateStruct(out)
}

// parseJSON solo parsea; lo usan los CRUD cuyo caso de uso ya valida con mensajes propios.
func parseJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Validation("invalid request body")
	}
	return nil
}

// bindQuery parsea la query string y valida.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.Validation("invalid query parameters")
	}
	return validateStruct(out)
}

func validateStruct(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.Validation("invalid request")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldMessage(fe))
	}
	return domain.Validation("%s", strings.Join(fields, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Namespace()
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email"
	case "oneof":
		return name + " must be one of: " + fe.Param()
	case "min", "gte":
		return name + " must be at least " + fe.Param()
	case "max", "lte":
		return name + " must be at most " + fe.Param()
	}
	return name + " is invalid"
}

// statusFor status HTTP por Kind. Upstream conserva el status del backend.
func statusFor(e *domain.Error) int {
	switch e.Kind {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindUpstream:
		if e.Status >= 400 {
			return e.Status
		}
		return fiber.StatusBadGateway
	case domain.KindNetwork:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func codeFor(k domain.Kind) string {
	switch k {
	case domain.KindValidation:
		return "VALIDATION"
	case domain.KindNotFound:
		return "NOT_FOUND"
	case domain.KindUnauthorized:
		return "UNAUTHORIZED"
	case domain.KindForbidden:
		return "FORBIDDEN"
	case domain.KindConflict:
		return "CONFLICT"
	case domain.KindUpstream:
		return "UPSTREAM"
	case domain.KindNetwork:
		return "NETWORK"
	}
	return "INTERNAL"
}

// writeError traduce el error de aplicación al cuerpo estándar.
// Los errores internos no filtran detalles de infraestructura.
func writeError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "PAYLOAD_TOO_LARGE"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	var e *domain.Error
	if !errors.As(err, &e) {
		e = &domain.Error{Kind: domain.KindOf(err), Message: err.Error()}
	}
	msg := e.Message
	if e.Kind == domain.KindInternal {
		msg = "internal server error"
	}
	return c.Status(statusFor(e)).JSON(dto.ErrorResponse{Code: codeFor(e.Kind), Message: msg})
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(dto.OK(data))
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.OK(data))
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(dto.DataResponse{Success: true, Message: msg})
}
