package services

import "github.com/localnerve/agsdb/internal/models"

// SidebarNode is one table in the sidebar tree
type SidebarNode struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	RowCount   int            `json:"rowCount"`
	ChildCount int            `json:"childCount"`
	Children   []*SidebarNode `json:"children"`
}

// BuildSidebar nests tables under their parents. Tables whose parent is not in
// the list are roots. Siblings keep input order.
func BuildSidebar(tables []models.Table) []*SidebarNode {
	nodes := make(map[string]*SidebarNode, len(tables))
	for _, t := range tables {
		nodes[t.ID] = &SidebarNode{
			ID:       t.ID,
			Name:     t.Name,
			RowCount: t.RowCount,
			Children: []*SidebarNode{},
		}
	}

	roots := []*SidebarNode{}
	for _, t := range tables {
		node := nodes[t.ID]
		if t.ParentID != nil && *t.ParentID != t.ID {
			if parent, ok := nodes[*t.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				parent.ChildCount++
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// SidebarPath returns the ids from a root down to tableID, or nil when it is absent
func SidebarPath(roots []*SidebarNode, tableID string) []string {
	for _, node := range roots {
		if node.ID == tableID {
			return []string{node.ID}
		}
		if path := SidebarPath(node.Children, tableID); path != nil {
			return append([]string{node.ID}, path...)
		}
	}
	return nil
}
