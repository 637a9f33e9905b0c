package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agsdb/internal/middleware"
	"github.com/localnerve/agsdb/internal/models"
	"github.com/localnerve/agsdb/internal/services"
	"gorm.io/gorm"
)

// TableHandler handles the AGS table browser and its JSON feeds
type TableHandler struct {
	DB *gorm.DB
}

// LocationsResponse is the map feed of a project
type LocationsResponse struct {
	Locations []models.Location    `json:"locations"`
	Midpoint  services.Coordinates `json:"midpoint"`
}

// SidebarItem is a sidebar node prepared for the template
type SidebarItem struct {
	ID         string
	Name       string
	Href       string
	RowCount   int
	ChildCount int
	Open       bool
	Selected   bool
	Children   []*SidebarItem
}

// Index handles GET /projects/:projectId/tables
func (h *TableHandler) Index(c *fiber.Ctx) error {
	project := middleware.UserProject(c).Project

	tables, err := services.GetTables(h.DB.WithContext(c.UserContext()), project.ID)
	if err != nil {
		return err
	}

	return c.Render("tables", page(c, project.Name+" tables", fiber.Map{
		"Breadcrumbs": projectCrumbs(project.ID, project.Name, Crumb{Label: "Tables"}),
		"Tabs":        projectTabs(project.ID, "tables"),
		"Project":     project,
		"Tables":      tables,
		"Sidebar":     sidebarItems(project.ID, services.BuildSidebar(tables), ""),
	}))
}

// Show handles GET /projects/:projectId/tables/:tableId
func (h *TableHandler) Show(c *fiber.Ctx) error {
	tableID, err := requireParam(c, "tableId")
	if err != nil {
		return err
	}
	project := middleware.UserProject(c).Project
	db := h.DB.WithContext(c.UserContext())

	table, err := services.GetTable(db, project.ID, tableID)
	if err != nil {
		return err
	}
	tables, err := services.GetTables(db, project.ID)
	if err != nil {
		return err
	}

	headings, err := table.DecodeHeadings()
	if err != nil {
		return err
	}
	rows, err := table.DecodeRows()
	if err != nil {
		return err
	}

	return c.Render("table", page(c, table.Name, fiber.Map{
		"Breadcrumbs": projectCrumbs(project.ID, project.Name,
			Crumb{Label: "Tables", Href: "/projects/" + project.ID + "/tables"},
			Crumb{Label: table.Name}),
		"Tabs":     projectTabs(project.ID, "tables"),
		"Project":  project,
		"Table":    table,
		"Headings": headings,
		"Rows":     rows,
		"Sidebar":  sidebarItems(project.ID, services.BuildSidebar(tables), table.ID),
	}))
}

// Locations handles GET /projects/:projectId/tables/locations
// @Summary Project locations
// @Description Investigation locations of a project and their midpoint, for the map
// @Tags Tables
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {object} LocationsResponse
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /projects/{projectId}/tables/locations [get]
func (h *TableHandler) Locations(c *fiber.Ctx) error {
	projectID := middleware.UserProject(c).ProjectID

	locations, err := services.GetLocations(h.DB.WithContext(c.UserContext()), projectID)
	if err != nil {
		return err
	}
	midpoint, err := services.Midpoint(services.LocationCoordinates(locations))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(LocationsResponse{
		Locations: locations,
		Midpoint:  midpoint,
	})
}

// Sidebar handles GET /projects/:projectId/tables/sidebar
// @Summary Project table tree
// @Description The project's AGS groups nested under their parent groups
// @Tags Tables
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {array} services.SidebarNode
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /projects/{projectId}/tables/sidebar [get]
func (h *TableHandler) Sidebar(c *fiber.Ctx) error {
	projectID := middleware.UserProject(c).ProjectID

	tables, err := services.GetTables(h.DB.WithContext(c.UserContext()), projectID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(services.BuildSidebar(tables))
}

// sidebarItems marks the nodes on the path to selectedID open
func sidebarItems(projectID string, roots []*services.SidebarNode, selectedID string) []*SidebarItem {
	open := make(map[string]bool)
	for _, id := range services.SidebarPath(roots, selectedID) {
		open[id] = true
	}

	var convert func(nodes []*services.SidebarNode) []*SidebarItem
	convert = func(nodes []*services.SidebarNode) []*SidebarItem {
		items := make([]*SidebarItem, 0, len(nodes))
		for _, n := range nodes {
			items = append(items, &SidebarItem{
				ID:         n.ID,
				Name:       n.Name,
				Href:       "/projects/" + projectID + "/tables/" + n.ID,
				RowCount:   n.RowCount,
				ChildCount: n.ChildCount,
				Open:       open[n.ID],
				Selected:   n.ID == selectedID,
				Children:   convert(n.Children),
			})
		}
		return items
	}

	return convert(roots)
}
