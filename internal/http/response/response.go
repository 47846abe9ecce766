package response

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/flicker-bff/internal/envelope"
)

// ServiceStatusKey is the gin context key holding the serviceStatus of the
// envelope written for the request.
const ServiceStatusKey = "service_status"

// RespondEnvelope writes env verbatim with its HTTPStatus as the transport
// status.
func RespondEnvelope(c *gin.Context, env envelope.Envelope) {
	c.Set(ServiceStatusKey, int(env.ServiceStatus))
	c.JSON(env.HTTPStatus, env)
}

// RespondStatus writes a registry envelope with no data.
func RespondStatus(c *gin.Context, code envelope.Code, message string) {
	RespondEnvelope(c, envelope.New(code, message, nil))
}

// AbortWithStatus is RespondStatus for middleware that must stop the chain.
func AbortWithStatus(c *gin.Context, code envelope.Code, message string) {
	env := envelope.New(code, message, nil)
	c.Set(ServiceStatusKey, int(env.ServiceStatus))
	c.AbortWithStatusJSON(env.HTTPStatus, env)
}
