package project

// Resolve returns the effective version for a project pinned to version.
// When version names a group, the first group with that exact name supplies
// the result; otherwise version is returned unchanged.
func Resolve(version string, groups []Group) string {
	for _, g := range groups {
		if g.Name == version {
			return g.Version
		}
	}
	return version
}

// ResolveAll returns each project with Version replaced by its resolved value.
func ResolveAll(projects []Project, groups []Group) []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		p.Version = Resolve(p.Version, groups)
		out[i] = p
	}
	return out
}
