// Package httpx holds small gin helpers shared by the feature handlers.
package httpx

import (
	"errors"
	"fmt"

	"wastemap_backend/internal/platform/apperr"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// PathID binds the positive integer path parameter name.
// A missing, non-numeric or non-positive value is a Validation error.
func PathID(c *gin.Context, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return 0, apperr.E(apperr.Validation, "", fmt.Errorf("invalid %s parameter", name))
	}
	if id <= 0 {
		return 0, apperr.E(apperr.Validation, "", fmt.Errorf("invalid %s parameter", name))
	}
	return id, nil
}

// BindJSON binds the request body into dst and reports failures as Validation errors.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.E(apperr.Validation, "", errors.New("invalid request body: "+err.Error()))
	}
	return nil
}
