package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/ieve-api/pkg/errors"
)

// bindJSON decodes the request body into dest. An empty body leaves dest at
// its zero value so required-field validation reports it.
func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid JSON payload")
	}
	return nil
}

func deleted(entity string) string {
	return entity + " deleted successfully"
}
