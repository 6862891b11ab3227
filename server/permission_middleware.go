package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/permission-service/apperrors"
	"github.com/campus-hub/permission-service/gate"
	"github.com/campus-hub/permission-service/models"
	"github.com/campus-hub/permission-service/permission"
	"github.com/campus-hub/permission-service/store"
)

// RequireAdmin gates an endpoint on the admin role exactly. A capability
// never substitutes for this check.
func (s *Server) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !models.IsAdminRole(c.GetString(ctxRole)) {
			failStatus(c, http.StatusForbidden, "administrator role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAssignCapability gates a domain's school-assignment endpoints:
// admins pass, otherwise the caller must hold the domain's approve or
// assign_school capability. Evaluation failures fail closed.
func (s *Server) RequireAssignCapability(domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		if models.IsAdminRole(actor.Role) {
			c.Next()
			return
		}
		view, err := s.selfView(c)
		if err != nil {
			failStatus(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}
		if !gate.CanAssignSchools(domain, actor.Role, view) {
			failStatus(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// selfView loads the caller's own effective permission view. A user without a
// profile row yet gets an empty view rather than an error, so inherent-role
// behavior still applies.
func (s *Server) selfView(c *gin.Context) (*permission.View, error) {
	actor := actorFrom(c)
	db, err := s.GetDB()
	if err != nil {
		return nil, err
	}
	view, err := store.NewGrantStore(db).EffectivePermissions(c.Request.Context(), actor, actor.ID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return &permission.View{UserID: actor.ID, Role: actor.Role}, nil
		}
		return nil, err
	}
	return view, nil
}
