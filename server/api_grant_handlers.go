package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/permission-service/apperrors"
	"github.com/campus-hub/permission-service/models"
	"github.com/campus-hub/permission-service/store"
)

type grantBody struct {
	UserID        string          `json:"userId"`
	DepartmentID  string          `json:"departmentId"`
	CentralDeptID string          `json:"centralDeptId"`
	Permissions   map[string]bool `json:"permissions"`
	IsPrimary     bool            `json:"isPrimary"`
}

func (b *grantBody) unitID() string {
	if b.DepartmentID != "" {
		return b.DepartmentID
	}
	return b.CentralDeptID
}

// handleGrant upserts a grant for one unit kind. The endpoint's kind must
// match the referenced unit; granting a central department through the
// school-dept endpoint is a validation error, not a silent success.
func (s *Server) handleGrant(c *gin.Context, kind string) {
	var body grantBody
	if err := c.ShouldBindJSON(&body); err != nil {
		failStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}
	db, err := s.GetDB()
	if err != nil {
		failStatus(c, http.StatusInternalServerError, "server unavailable")
		return
	}
	ctx := c.Request.Context()
	grants := store.NewGrantStore(db)

	unitID := body.unitID()
	if strings.TrimSpace(unitID) == "" {
		fail(c, apperrors.Validation("departmentId is required"))
		return
	}
	unit, err := grants.Units.Get(ctx, unitID)
	if err != nil {
		fail(c, err)
		return
	}
	if unit.Kind != kind {
		fail(c, apperrors.Validation("unit is not a "+strings.ToLower(strings.ReplaceAll(kind, "_", " "))))
		return
	}

	grant, err := grants.Grant(ctx, actorFrom(c), store.GrantRequest{
		UserID:       body.UserID,
		UnitID:       unitID,
		Capabilities: models.CapabilityMap(body.Permissions),
		IsPrimary:    body.IsPrimary,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"grant": grant})
}

func (s *Server) HandleGrantSchoolDeptGin(c *gin.Context) {
	s.handleGrant(c, models.UnitKindSchoolDept)
}

func (s *Server) HandleGrantCentralDeptGin(c *gin.Context) {
	s.handleGrant(c, models.UnitKindCentralDept)
}

// HandleRevokeGin soft-deletes a grant. Idempotent: revoking twice acks both
// times.
func (s *Server) HandleRevokeGin(c *gin.Context) {
	var body grantBody
	if err := c.ShouldBindJSON(&body); err != nil {
		failStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}
	db, err := s.GetDB()
	if err != nil {
		failStatus(c, http.StatusInternalServerError, "server unavailable")
		return
	}
	if err := store.NewGrantStore(db).Revoke(c.Request.Context(), actorFrom(c), body.UserID, body.unitID()); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "grant revoked"})
}

// HandleGetUserPermissionsGin returns the effective permission view for a
// user. The store enforces self-or-admin visibility.
func (s *Server) HandleGetUserPermissionsGin(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	db, err := s.GetDB()
	if err != nil {
		failStatus(c, http.StatusInternalServerError, "server unavailable")
		return
	}
	view, err := store.NewGrantStore(db).EffectivePermissions(c.Request.Context(), actorFrom(c), userID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"permissions": view})
}

// HandleCheckPermissionGin answers whether the caller holds a capability in
// one unit. Variant and substring tolerance included; absence is a normal
// false, never an error.
func (s *Server) HandleCheckPermissionGin(c *gin.Context) {
	unitID := strings.TrimSpace(c.Query("departmentId"))
	if unitID == "" {
		unitID = strings.TrimSpace(c.Query("centralDeptId"))
	}
	key := strings.TrimSpace(c.Query("permissionKey"))
	db, err := s.GetDB()
	if err != nil {
		failStatus(c, http.StatusInternalServerError, "server unavailable")
		return
	}
	has, err := store.NewGrantStore(db).CheckCapability(c.Request.Context(), actorFrom(c).ID, unitID, key)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"hasPermission": has})
}
