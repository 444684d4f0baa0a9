package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the only error shape the API emits: {"error": "<message>"}.
type ErrorBody struct {
	Error string `json:"error"`
}

// Ack is the body of a successful save.
type Ack struct {
	Success bool `json:"success"`
}

// Success sends data as the bare JSON response body.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Acknowledge sends {"success": true}.
func Acknowledge(c *gin.Context, statusCode int) {
	c.JSON(statusCode, Ack{Success: true})
}

// Fail sends an error response carrying the static message for code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, ErrorBody{Error: GetMessage(code)})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Error: GetMessage(code)})
}

// Empty sends a status with an empty body, keeping the JSON content type.
func Empty(c *gin.Context, statusCode int) {
	c.Header("Content-Type", "application/json")
	c.Status(statusCode)
}
