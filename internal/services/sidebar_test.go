package services_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/localnerve/agsdb/internal/models"
	"github.com/localnerve/agsdb/internal/services"
	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestBuildSidebar(t *testing.T) {
	tables := []models.Table{
		{ID: "proj", Name: "PROJ", RowCount: 1},
		{ID: "loca", Name: "LOCA", RowCount: 2},
		{ID: "geol", Name: "GEOL", RowCount: 3, ParentID: ptr("loca")},
		{ID: "samp", Name: "SAMP", RowCount: 2, ParentID: ptr("loca")},
		{ID: "llpl", Name: "LLPL", RowCount: 1, ParentID: ptr("samp")},
		{ID: "orphan", Name: "ISPT", RowCount: 4, ParentID: ptr("gone")},
	}

	llpl := &services.SidebarNode{ID: "llpl", Name: "LLPL", RowCount: 1, Children: []*services.SidebarNode{}}
	want := []*services.SidebarNode{
		{ID: "proj", Name: "PROJ", RowCount: 1, Children: []*services.SidebarNode{}},
		{ID: "loca", Name: "LOCA", RowCount: 2, ChildCount: 2, Children: []*services.SidebarNode{
			{ID: "geol", Name: "GEOL", RowCount: 3, Children: []*services.SidebarNode{}},
			{ID: "samp", Name: "SAMP", RowCount: 2, ChildCount: 1, Children: []*services.SidebarNode{llpl}},
		}},
		{ID: "orphan", Name: "ISPT", RowCount: 4, Children: []*services.SidebarNode{}},
	}

	got := services.BuildSidebar(tables)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sidebar mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSidebarEmpty(t *testing.T) {
	assert.Empty(t, services.BuildSidebar(nil))
}

func TestSidebarPath(t *testing.T) {
	roots := services.BuildSidebar([]models.Table{
		{ID: "loca", Name: "LOCA"},
		{ID: "samp", Name: "SAMP", ParentID: ptr("loca")},
		{ID: "llpl", Name: "LLPL", ParentID: ptr("samp")},
	})

	assert.Equal(t, []string{"loca", "samp", "llpl"}, services.SidebarPath(roots, "llpl"))
	assert.Equal(t, []string{"loca"}, services.SidebarPath(roots, "loca"))
	assert.Nil(t, services.SidebarPath(roots, "none"))
}
