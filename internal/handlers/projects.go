// projects.go
//
// A project and AGS field data service for geotechnical site investigations
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of agsdb.
// agsdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// agsdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with agsdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agsdb/internal/middleware"
	"github.com/localnerve/agsdb/internal/services"
	"github.com/localnerve/agsdb/internal/types"
	"github.com/localnerve/agsdb/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectHandler handles the project pages and AGS uploads
type ProjectHandler struct {
	DB     *gorm.DB
	Files  services.FileStore
	Logger *zap.Logger
}

// List handles GET /projects
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := services.GetProjectsForUser(h.DB.WithContext(c.UserContext()), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.Render("projects", page(c, "Projects", fiber.Map{
		"Projects": projects,
	}))
}

// New handles GET /projects/create
func (h *ProjectHandler) New(c *fiber.Ctx) error {
	return c.Render("project_create", createForm(c, "", "", ""))
}

// Create handles POST /projects/create
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	name := c.FormValue("name")
	description := c.FormValue("description")

	project, err := services.CreateProject(h.DB.WithContext(c.UserContext()), middleware.UserID(c), name, description)
	if errors.Is(err, services.ErrInvalid) {
		c.Status(fiber.StatusBadRequest)
		return c.Render("project_create", createForm(c, name, description, "Please give the project a name of at most 255 characters."))
	}
	if err != nil {
		return err
	}

	h.Logger.Info("Project created",
		zap.String("project_id", project.ID),
		zap.String("user_id", middleware.UserID(c)))
	return c.Redirect("/projects/"+project.ID, fiber.StatusSeeOther)
}

func createForm(c *fiber.Ctx, name, description, message string) fiber.Map {
	return page(c, "New project", fiber.Map{
		"Breadcrumbs": []Crumb{{Label: "Projects", Href: "/projects"}, {Label: "New project"}},
		"Name":        name,
		"Description": description,
		"Error":       message,
	})
}

// Show handles GET /projects/:projectId
func (h *ProjectHandler) Show(c *fiber.Ctx) error {
	membership := middleware.UserProject(c)
	project := membership.Project

	uploads, err := services.ListUploads(h.DB.WithContext(c.UserContext()), project.ID)
	if err != nil {
		return err
	}

	return c.Render("project", page(c, project.Name, fiber.Map{
		"Breadcrumbs": projectCrumbs(project.ID, project.Name),
		"Tabs":        projectTabs(project.ID, "overview"),
		"Project":     project,
		"Uploads":     uploads,
		"Map":         true,
	}))
}

// Upload handles POST /projects/:projectId/uploads
// @Summary Upload an AGS file
// @Description Stores a multipart AGS4 file, parses it and replaces the project's tables and locations
// @Tags Projects
// @Accept mpfd
// @Produce json
// @Param projectId path string true "Project ID"
// @Param file formData file true "AGS4 file"
// @Success 201 {object} models.AgsUpload
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} models.AgsUpload
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /projects/{projectId}/uploads [post]
func (h *ProjectHandler) Upload(c *fiber.Ctx) error {
	projectID, err := requireParam(c, "projectId")
	if err != nil {
		return err
	}
	membership := middleware.UserProject(c)

	header, err := c.FormFile("file")
	if err != nil {
		return types.NewCustomError(fiber.StatusBadRequest, types.ErrorTypeUpload, `Missing AGS file in form field "file"`)
	}

	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	upload, err := services.IngestFile(c.UserContext(), h.DB, h.Files, membership, header.Filename, file)
	if upload == nil {
		return err
	}
	if err != nil {
		h.Logger.Warn("AGS upload failed",
			zap.String("upload_id", upload.ID),
			zap.String("project_id", projectID),
			zap.Error(err))
	} else {
		h.Logger.Info("AGS upload completed",
			zap.String("upload_id", upload.ID),
			zap.String("project_id", projectID),
			zap.String("file", header.Filename))
	}

	if utils.WantsJSON(c) {
		status := fiber.StatusCreated
		if err != nil {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(upload)
	}
	return c.Redirect("/projects/"+projectID, fiber.StatusSeeOther)
}
