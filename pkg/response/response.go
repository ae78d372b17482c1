package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the standard API response envelope.
type Body struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK sends a 200 JSON response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Body{Success: true, Data: data})
}

// Ack sends a bare {"success": true}; webhook callers only check the flag.
func Ack(c *gin.Context) {
	c.JSON(http.StatusOK, Body{Success: true})
}

// Fail aborts the chain and writes an error envelope.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Body{Error: msg})
}

func BadRequest(c *gin.Context, msg string)         { Fail(c, http.StatusBadRequest, msg) }
func Unauthorized(c *gin.Context, msg string)       { Fail(c, http.StatusUnauthorized, msg) }
func Forbidden(c *gin.Context, msg string)          { Fail(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)           { Fail(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)           { Fail(c, http.StatusConflict, msg) }
func ServiceUnavailable(c *gin.Context, msg string) { Fail(c, http.StatusServiceUnavailable, msg) }
func Internal(c *gin.Context, msg string)           { Fail(c, http.StatusInternalServerError, msg) }
