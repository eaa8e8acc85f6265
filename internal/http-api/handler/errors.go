package handler

import (
	"bookhub/internal/http-api/apperror"

	"github.com/gin-gonic/gin"
)

// writeError is the single place component errors become HTTP responses.
// Every error body is {"message": "..."}.
func writeError(c *gin.Context, err error) {
	c.JSON(apperror.Status(err), gin.H{"message": apperror.UserMessage(err)})
}
