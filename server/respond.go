package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/permission-service/apperrors"
)

// ok writes the success envelope with extra fields merged in.
func ok(c *gin.Context, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// fail translates a domain error into the failure envelope. Raw causes stay
// in the server log; only the taxonomy message crosses the boundary.
func fail(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{
		"success": false,
		"message": apperrors.UserMessage(err),
	})
}

// failStatus writes the failure envelope with an explicit status.
func failStatus(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
