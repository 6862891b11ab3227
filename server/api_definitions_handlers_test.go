package server

import (
	"net/http"
	"testing"
)

func TestHandleGetDefinitions(t *testing.T) {
	e := startTestAPI(t, newAuthOnlyServer())
	token := signToken(t, "user-defs", "staff", "Defs Reader")

	obj := e.GET("/permission-management/definitions").
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusOK).
		JSON().Object()

	obj.ValueEqual("success", true)
	obj.Value("schoolDepartments").Array().NotEmpty()

	central := obj.Value("centralDepartments").Object()
	central.ContainsKey("DRD")
	central.ContainsKey("HR")

	// The research office catalog carries a review capability per domain.
	keys := map[string]bool{}
	for _, v := range central.Value("DRD").Array().Iter() {
		keys[v.Object().Value("key").String().Raw()] = true
	}
	for _, want := range []string{"ipr_review", "research_review", "book_review", "conference_review", "grant_review"} {
		if !keys[want] {
			t.Fatalf("DRD catalog missing %s: %v", want, keys)
		}
	}
}
