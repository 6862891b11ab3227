package server

import (
	"github.com/gin-gonic/gin"

	"github.com/campus-hub/permission-service/catalog"
	"github.com/campus-hub/permission-service/models"
)

// HandleGetDefinitionsGin returns the full capability catalog: the fixed
// school-department set and the per-type central-department sets.
func (s *Server) HandleGetDefinitionsGin(c *gin.Context) {
	ok(c, gin.H{
		"schoolDepartments":  catalog.Definitions(models.UnitKindSchoolDept),
		"centralDepartments": catalog.CentralDefinitions(),
	})
}
