package server

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campus-hub/permission-service/models"
)

// memberSlugs maps the URL slug of each domain's member routes to the review
// domain. The IPR routes keep their historical "drd" slug.
var memberSlugs = []struct {
	slug   string
	domain string
}{
	{"drd", models.DomainIPR},
	{"research", models.DomainResearch},
	{"book", models.DomainBook},
	{"conference", models.DomainConference},
	{"grant", models.DomainGrant},
}

// requestIDMiddleware tags every request with an X-Request-ID for log
// correlation, generating one when the caller did not send it.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Set("requestId", id)
		c.Next()
	}
}

// NewGinEngine builds the router. Every route sits behind the session auth
// middleware; mutating routes add the admin or capability gates.
func NewGinEngine(s *Server) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())

	pm := r.Group("/permission-management")
	pm.Use(s.AuthMiddleware())

	// Catalog and self-service reads
	pm.GET("/definitions", s.HandleGetDefinitionsGin)
	pm.GET("/users/:userId/permissions", s.HandleGetUserPermissionsGin)
	pm.GET("/check", s.HandleCheckPermissionGin)
	pm.GET("/menu", s.HandleGetMenuGin)
	pm.GET("/can-file/:domain", s.HandleCanFileGin)
	pm.GET("/schools", s.HandleListSchoolsGin)
	pm.GET("/units", s.HandleListUnitsGin)

	// Grant administration (admin role enforced again in the store)
	pm.POST("/school-dept/grant", s.RequireAdmin(), s.HandleGrantSchoolDeptGin)
	pm.POST("/central-dept/grant", s.RequireAdmin(), s.HandleGrantCentralDeptGin)
	pm.POST("/school-dept/revoke", s.RequireAdmin(), s.HandleRevokeGin)
	pm.POST("/central-dept/revoke", s.RequireAdmin(), s.HandleRevokeGin)

	// Unit and mapping administration
	pm.POST("/units", s.RequireAdmin(), s.HandleCreateUnitGin)
	pm.POST("/domain-units", s.RequireAdmin(), s.HandleSetDomainUnitGin)
	pm.GET("/audit", s.RequireAdmin(), s.HandleListAuditGin)

	// Per-domain reviewer scope routes
	for _, ms := range memberSlugs {
		pm.POST("/"+ms.slug+"-member/assign-schools", s.RequireAssignCapability(ms.domain), s.HandleAssignSchoolsGin(ms.domain))
		pm.GET("/"+ms.slug+"-member/:userId/assigned-schools", s.HandleGetAssignedSchoolsGin(ms.domain))
		pm.GET("/drd-members/with-"+ms.domain+"-schools", s.HandleMembersWithSchoolsGin(ms.domain))
		pm.GET("/schools/with-"+ms.domain+"-members", s.HandleSchoolsWithMembersGin(ms.domain))
		pm.GET("/school-members/:schoolId/"+ms.domain, s.HandleMembersForSchoolGin(ms.domain))
	}

	return r
}
