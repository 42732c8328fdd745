package routes

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator builds the shared validator, reporting field names from json
// tags so error maps match the wire format.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func respondData(c *fiber.Ctx, code int, message string, data interface{}) error {
	body := fiber.Map{"status": "success", "data": data}
	if message != "" {
		body["message"] = message
	}
	return c.Status(code).JSON(body)
}

func respondMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"status": "success", "message": message})
}

func respondList(c *fiber.Ctx, message string, data interface{}, meta pageMeta) error {
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
		"meta":    meta,
	})
}

func respondError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{"status": "error", "message": message})
}

// respondFieldErrors reports per-field validation messages with the
// standard 400 envelope.
func respondFieldErrors(c *fiber.Ctx, errs map[string][]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"message": "Validation failed",
		"errors":  errs,
	})
}

func fieldError(c *fiber.Ctx, field, message string) error {
	return respondFieldErrors(c, map[string][]string{field: {message}})
}

// respondValidation translates validator errors into the field error map.
func respondValidation(c *fiber.Ctx, err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "Validation failed")
	}
	errs := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		errs[field] = append(errs[field], validationMessage(fe))
	}
	return respondFieldErrors(c, errs)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", fe.Field())
	case "min":
		return fmt.Sprintf("The %s must be at least %s.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s.", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be at least %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", fe.Field())
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}
