package responses

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Standardized JSON envelopes shared by every controller.

type jsonSuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type jsonErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Errors  interface{} `json:"errors,omitempty"`
}

type jsonPaginatedResponse struct {
	Status     string      `json:"status"`
	Data       interface{} `json:"data"`
	Pagination pagination  `json:"pagination"`
}

type pagination struct {
	TotalItems   int64 `json:"total_items"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
	PageSize     int   `json:"page_size"`
	HasNextPage  bool  `json:"has_next_page"`
	HasPrevPage  bool  `json:"has_prev_page"`
	NextPage     *int  `json:"next_page,omitempty"`
	PreviousPage *int  `json:"previous_page,omitempty"`
}

// ErrorResponse sends a standardized error JSON response and aborts the
// handler chain.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	statusText := "error"
	if statusCode >= http.StatusInternalServerError {
		statusText = "fail"
	}
	c.AbortWithStatusJSON(statusCode, jsonErrorResponse{
		Status:  statusText,
		Message: message,
		Code:    statusCode,
	})
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, err := range errs {
		var msg string
		switch err.Tag() {
		case "required":
			msg = fmt.Sprintf("The %s field is required.", err.Field())
		case "min":
			msg = fmt.Sprintf("The %s field must be at least %s.", err.Field(), err.Param())
		case "max":
			msg = fmt.Sprintf("The %s field must not exceed %s.", err.Field(), err.Param())
		case "oneof":
			msg = fmt.Sprintf("The %s field must be one of the following: %s.", err.Field(), strings.ReplaceAll(err.Param(), " ", ", "))
		default:
			msg = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", err.Field(), err.Tag())
		}
		out[strings.ToLower(err.Field())] = msg
	}
	return out
}

// ValidationErrorResponse renders binding failures from ShouldBindJSON as a
// field-keyed error map; malformed JSON gets a plain 400.
func ValidationErrorResponse(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, jsonErrorResponse{
			Status:  "error",
			Message: "Validation failed. Please check your input.",
			Code:    http.StatusBadRequest,
			Errors:  formatValidationErrors(ve),
		})
		return
	}
	ErrorResponse(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
}

// SuccessResponse sends a standardized success JSON response. When data is
// gin.H with a string "message" key, the message is lifted to the envelope
// and the remaining keys become the payload.
func SuccessResponse(c *gin.Context, statusCode int, responseData interface{}) {
	payload := jsonSuccessResponse{Status: "success"}

	if gh, ok := responseData.(gin.H); ok {
		if msg, isStr := gh["message"].(string); isStr {
			payload.Message = msg
			rest := make(gin.H, len(gh))
			for k, v := range gh {
				if k != "message" {
					rest[k] = v
				}
			}
			if len(rest) > 0 {
				payload.Data = rest
			}
			c.JSON(statusCode, payload)
			return
		}
	}

	payload.Data = responseData
	c.JSON(statusCode, payload)
}

// PaginatedResponse sends a success envelope around one page of items.
func PaginatedResponse(c *gin.Context, statusCode int, itemsData interface{}, currentPage, pageSize int, totalItems int64) {
	if pageSize <= 0 {
		pageSize = 10
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(pageSize)))
	}

	p := pagination{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		HasNextPage: currentPage < totalPages,
		HasPrevPage: currentPage > 1 && currentPage <= totalPages,
	}
	if p.HasNextPage {
		next := currentPage + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := currentPage - 1
		p.PreviousPage = &prev
	}

	c.JSON(statusCode, jsonPaginatedResponse{
		Status:     "success",
		Data:       itemsData,
		Pagination: p,
	})
}
