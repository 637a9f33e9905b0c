package ags

// Key groups that other groups hang under
const (
	GroupProject  = "PROJ"
	GroupLocation = "LOCA"
	GroupSample   = "SAMP"
)

// ParentGroup returns the group name that name belongs under, or "" for a
// top level group. Sample based groups (carrying SAMP_ID or SAMP_REF) belong to
// SAMP, location based groups (carrying LOCA_ID) belong to LOCA, provided the
// parent group is present in raw.
func ParentGroup(raw RawData, name string) string {
	g, ok := raw[name]
	if !ok {
		return ""
	}

	if name != GroupSample && (g.Has("SAMP_ID") || g.Has("SAMP_REF")) {
		if _, ok := raw[GroupSample]; ok {
			return GroupSample
		}
	}
	if name != GroupLocation && g.Has("LOCA_ID") {
		if _, ok := raw[GroupLocation]; ok {
			return GroupLocation
		}
	}
	return ""
}

// Depth returns how many parents a group has
func Depth(raw RawData, name string) int {
	depth := 0
	for parent := ParentGroup(raw, name); parent != "" && depth < len(raw); parent = ParentGroup(raw, parent) {
		depth++
	}
	return depth
}

// TopologicalNames returns the group names ordered so that every parent
// precedes its children, keeping file order within a depth.
func TopologicalNames(raw RawData) []string {
	names := raw.GroupNames()
	ordered := make([]string, 0, len(names))
	for depth := 0; len(ordered) < len(names); depth++ {
		for _, name := range names {
			if Depth(raw, name) == depth {
				ordered = append(ordered, name)
			}
		}
	}
	return ordered
}
