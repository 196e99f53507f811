package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONBindError reports a request that failed binding, listing the offending
// fields when the failure came from validation tags.
func JSONBindError(c *gin.Context, code int, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		JSONError(c, code, "Invalid request payload")
		return
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, describeField(fe))
	}
	c.JSON(code, gin.H{
		"success": false,
		"error":   "Invalid request payload",
		"details": fields,
	})
}

func describeField(fe validator.FieldError) string {
	name := fe.Field()
	if name != "" {
		name = strings.ToLower(name[:1]) + name[1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
}
