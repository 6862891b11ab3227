package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/permission-service/apperrors"
	"github.com/campus-hub/permission-service/store"
)

// HandleAssignSchoolsGin writes a reviewer's school set for one domain,
// verbatim. The route closure pins the domain.
func (s *Server) HandleAssignSchoolsGin(domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			UserID    string   `json:"userId"`
			SchoolIDs []string `json:"schoolIds"`
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
		grant, err := store.NewGrantStore(db).AssignScope(c.Request.Context(), actorFrom(c), body.UserID, domain, body.SchoolIDs)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, gin.H{"grant": grant})
	}
}

// HandleGetAssignedSchoolsGin returns the schools the target user may review
// in one domain, name-sorted, stale IDs filtered.
func (s *Server) HandleGetAssignedSchoolsGin(domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.Param("userId"))
		db, err := s.GetDB()
		if err != nil {
			failStatus(c, http.StatusInternalServerError, "server unavailable")
			return
		}
		schools, err := store.NewGrantStore(db).ResolveAssignedSchools(c.Request.Context(), userID, domain)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				// Read-only admin view degrades to empty rather than blocking.
				ok(c, gin.H{"schools": []interface{}{}, "message": apperrors.UserMessage(err)})
				return
			}
			fail(c, err)
			return
		}
		ok(c, gin.H{"schools": schools})
	}
}

// HandleMembersWithSchoolsGin is the admin view "each reviewer and the
// schools they cover" for one domain. Degrades to an empty list with an
// explanatory message when the domain department does not exist yet.
func (s *Server) HandleMembersWithSchoolsGin(domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, err := s.GetDB()
		if err != nil {
			failStatus(c, http.StatusInternalServerError, "server unavailable")
			return
		}
		members, err := store.NewGrantStore(db).MembersWithSchools(c.Request.Context(), domain)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				ok(c, gin.H{"members": []interface{}{}, "message": apperrors.UserMessage(err)})
				return
			}
			fail(c, err)
			return
		}
		ok(c, gin.H{"members": members})
	}
}

// HandleSchoolsWithMembersGin is the inverse admin view: every active school
// with the reviewers covering it in one domain.
func (s *Server) HandleSchoolsWithMembersGin(domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, err := s.GetDB()
		if err != nil {
			failStatus(c, http.StatusInternalServerError, "server unavailable")
			return
		}
		schools, err := store.NewGrantStore(db).SchoolsWithMembers(c.Request.Context(), domain)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				ok(c, gin.H{"schools": []interface{}{}, "message": apperrors.UserMessage(err)})
				return
			}
			fail(c, err)
			return
		}
		ok(c, gin.H{"schools": schools})
	}
}

// HandleMembersForSchoolGin lists the reviewers covering one school in one
// domain.
func (s *Server) HandleMembersForSchoolGin(domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		schoolID := strings.TrimSpace(c.Param("schoolId"))
		db, err := s.GetDB()
		if err != nil {
			failStatus(c, http.StatusInternalServerError, "server unavailable")
			return
		}
		members, err := store.NewGrantStore(db).MembersForSchool(c.Request.Context(), domain, schoolID)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				ok(c, gin.H{"members": []interface{}{}, "message": apperrors.UserMessage(err)})
				return
			}
			fail(c, err)
			return
		}
		ok(c, gin.H{"members": members})
	}
}
