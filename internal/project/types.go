package project

// Project is a directory whose node version is pinned by nvmd.
type Project struct {
	Name     string `json:"name,omitempty"`
	Path     string `json:"path"`
	Version  string `json:"version,omitempty"`
	Active   bool   `json:"active,omitempty"`
	CreateAt string `json:"createAt,omitempty"`
	UpdateAt string `json:"updateAt,omitempty"`
}

// Group names a node version shared by several projects.
type Group struct {
	Name     string   `json:"name"`
	Desc     string   `json:"desc,omitempty"`
	Version  string   `json:"version,omitempty"`
	Projects []string `json:"projects,omitempty"`
}
