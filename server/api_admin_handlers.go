package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/permission-service/gate"
	"github.com/campus-hub/permission-service/models"
	"github.com/campus-hub/permission-service/store"
)

// HandleListUnitsGin lists active organizational units, optionally filtered
// by kind, for the grant administration screens.
func (s *Server) HandleListUnitsGin(c *gin.Context) {
	db, err := s.GetDB()
	if err != nil {
		failStatus(c, http.StatusInternalServerError, "server unavailable")
		return
	}
	units, err := store.NewUnitStore(db).List(c.Request.Context(), strings.TrimSpace(c.Query("kind")))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"units": units})
}

// HandleCreateUnitGin creates an organizational unit. Administrator only.
func (s *Server) HandleCreateUnitGin(c *gin.Context) {
	var body struct {
		Kind      string `json:"kind"`
		Code      string `json:"code"`
		Name      string `json:"name"`
		ShortName string `json:"shortName"`
		SchoolID  string `json:"schoolId"`
		DeptType  string `json:"deptType"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		failStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}
	db, err := s.GetDB()
	if err != nil {
		failStatus(c, http.StatusInternalServerError, "server unavailable")
		return
	}
	unit := models.OrganizationalUnit{
		Kind:      body.Kind,
		Code:      body.Code,
		Name:      body.Name,
		ShortName: body.ShortName,
		SchoolID:  body.SchoolID,
		DeptType:  body.DeptType,
	}
	if err := store.NewUnitStore(db).Create(c.Request.Context(), actorFrom(c), &unit); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"unit": unit})
}

// HandleSetDomainUnitGin pins a review domain to its owning department,
// replacing the fuzzy lookup for that domain from then on.
func (s *Server) HandleSetDomainUnitGin(c *gin.Context) {
	var body struct {
		Domain string `json:"domain"`
		UnitID string `json:"unitId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		failStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}
	db, err := s.GetDB()
	if err != nil {
		failStatus(c, http.StatusInternalServerError, "server unavailable")
		return
	}
	if err := store.NewUnitStore(db).SetDomainUnit(c.Request.Context(), actorFrom(c), body.Domain, body.UnitID); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "domain mapping updated"})
}

// HandleListSchoolsGin returns active schools for assignment pickers.
func (s *Server) HandleListSchoolsGin(c *gin.Context) {
	db, err := s.GetDB()
	if err != nil {
		failStatus(c, http.StatusInternalServerError, "server unavailable")
		return
	}
	schools, err := store.NewSchoolStore(db).ListActive(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"schools": schools})
}

// HandleListAuditGin returns recent audit rows for the admin console.
func (s *Server) HandleListAuditGin(c *gin.Context) {
	db, err := s.GetDB()
	if err != nil {
		failStatus(c, http.StatusInternalServerError, "server unavailable")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	rows, err := store.NewAuditStore(db).List(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"entries": rows})
}

// HandleGetMenuGin returns the caller's visible navigation sections, derived
// from the same gate the route guards use.
func (s *Server) HandleGetMenuGin(c *gin.Context) {
	view, err := s.selfView(c)
	if err != nil {
		fail(c, err)
		return
	}
	role := c.GetString(ctxRole)
	ok(c, gin.H{"sections": gate.VisibleMenuSections(role, view)})
}

// HandleCanFileGin reports whether the caller may start a filing in a domain.
func (s *Server) HandleCanFileGin(c *gin.Context) {
	domain := strings.TrimSpace(c.Param("domain"))
	if !models.IsReviewDomain(domain) {
		failStatus(c, http.StatusBadRequest, "unknown review domain: "+domain)
		return
	}
	view, err := s.selfView(c)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"canFile": gate.CanFile(domain, c.GetString(ctxRole), view)})
}
