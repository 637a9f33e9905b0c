// common.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agsdb/internal/middleware"
	"github.com/localnerve/agsdb/internal/types"
)

// Crumb is one breadcrumb link; the last one has no Href
type Crumb struct {
	Label string
	Href  string
}

// Tab is one project navigation tab
type Tab struct {
	Label  string
	Href   string
	Active bool
}

// requireParam returns a route parameter or a 400 error naming it
func requireParam(c *fiber.Ctx, name string) (string, error) {
	value := c.Params(name)
	if value == "" {
		return "", types.NewCustomError(fiber.StatusBadRequest, types.ErrorTypeParam, "Missing route parameter "+name)
	}
	return value, nil
}

// page merges the values every layout needs into a template binding
func page(c *fiber.Ctx, title string, bind fiber.Map) fiber.Map {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["Title"] = title
	bind["Email"] = middleware.Email(c)
	bind["Version"] = middleware.AppVersion(c)
	if _, ok := bind["Map"]; !ok {
		bind["Map"] = false
	}
	return bind
}

func projectTabs(projectID, active string) []Tab {
	base := "/projects/" + projectID
	return []Tab{
		{Label: "Overview", Href: base, Active: active == "overview"},
		{Label: "Tables", Href: base + "/tables", Active: active == "tables"},
	}
}

func projectCrumbs(projectID, projectName string, rest ...Crumb) []Crumb {
	crumbs := []Crumb{
		{Label: "Projects", Href: "/projects"},
		{Label: projectName, Href: "/projects/" + projectID},
	}
	crumbs = append(crumbs, rest...)
	if len(rest) == 0 {
		crumbs[len(crumbs)-1].Href = ""
	}
	return crumbs
}
