package handler

import (
	"errors"
	"net/http"
	"reflect"

	"tindapos/internal/apierror"
	"tindapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// validate decimal.Decimal fields by their float value so min/max work
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindJSON decodes and validates a JSON body, writing the 422 itself on
// failure. Returns false when the request was rejected.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("malformed request body"))
		return false
	}
	return validateStruct(c, dst)
}

// bindQuery decodes and validates query string filters.
func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("malformed query parameters"))
		return false
	}
	return validateStruct(c, dst)
}

func validateStruct(c *gin.Context, dst interface{}) bool {
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		} else {
			c.JSON(http.StatusUnprocessableEntity, apierror.New("validation failed"))
		}
		return false
	}
	return true
}

// pathUUID parses a :id style path parameter, writing the 404 on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("resource not found"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors onto HTTP statuses. Anything outside the
// known taxonomy becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(stockErr.Error()))
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrSaleNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New(notFoundMessage(err)))
	case errors.Is(err, service.ErrInsufficientPayment),
		errors.Is(err, service.ErrInvalidSaleState),
		errors.Is(err, service.ErrInvalidMovement),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrSKUTaken),
		errors.Is(err, service.ErrWrongPassword):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountDisabled):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("an unexpected error occurred"))
	}
}

func notFoundMessage(err error) string {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "resource not found"
	}
	return err.Error()
}
