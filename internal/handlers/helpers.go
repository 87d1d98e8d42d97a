package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return false
	}
	return true
}

// professionalID reads the authenticated professional. Routes using it are
// behind RequireProfessional, so a miss is a wiring bug.
func professionalID(c *gin.Context) (uuid.UUID, bool) {
	p, ok := middleware.Professional(c)
	if !ok {
		httperr.ForbiddenResp(c, "professional_only", "Only professionals can access this resource.")
		return uuid.Nil, false
	}
	return p.ID, true
}

func clientID(c *gin.Context) (uuid.UUID, bool) {
	p, ok := middleware.Client(c)
	if !ok {
		httperr.ForbiddenResp(c, "client_only", "Only clients can access this resource.")
		return uuid.Nil, false
	}
	return p.ID, true
}

func queryInt(c *gin.Context, key string, def, max int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
