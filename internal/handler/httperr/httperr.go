package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
	Detail any    `json:"detail,omitempty"`
}

// AbortWithError renders the public message and records the original error
// on the context so the logging and error middleware see the real cause,
// not just the sanitized body.
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		err = errors.New(msg)
	}

	resp := Response{Status: status, Error: msg}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
