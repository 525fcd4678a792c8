package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/presentation/http/dto/response"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/pagination"
)

const dateLayout = "2006-01-02"

// parseID reads a uuid path parameter, answering 400 when malformed
func parseID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("Invalid %s ID", resource))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body, answering with field errors when binding fails
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, len(verrs))
		for i, fe := range verrs {
			fields[i] = apperror.FieldError{
				Field:   toSnake(fe.Field()),
				Message: validationMessage(fe),
			}
		}
		response.ValidationError(c, fields)
		return false
	}
	response.BadRequest(c, "Invalid request body")
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid id"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseDateRange reads optional start_date/end_date (YYYY-MM-DD) query values
func parseDateRange(c *gin.Context) (entity.DateRange, error) {
	var r entity.DateRange
	if raw := strings.TrimSpace(c.Query("start_date")); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return r, apperror.NewInvalidInputError("start_date", "start_date must be YYYY-MM-DD")
		}
		r.Start = t
	}
	if raw := strings.TrimSpace(c.Query("end_date")); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return r, apperror.NewInvalidInputError("end_date", "end_date must be YYYY-MM-DD")
		}
		r.End = t
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return r, apperror.NewInvalidInputError("end_date", "end_date must not be before start_date")
	}
	return r, nil
}

func parsePagination(c *gin.Context) pagination.Params {
	params := pagination.Default()
	_ = c.ShouldBindQuery(&params)
	params.Validate()
	return params
}
