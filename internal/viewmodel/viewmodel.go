// Package viewmodel holds the plain data structs the templ components render.
package viewmodel

// StatHeader is the compact stat block at the top of the HUD panel.
type StatHeader struct {
	Name      string
	Level     int
	HPCurrent int
	HPMax     int
	HPTemp    int
	AC        int
}

// AdvancedStats is the expanded stat block below the header.
type AdvancedStats struct {
	Perception int
	Fortitude  int
	Reflex     int
	Will       int
	Speed      int
	Senses     string
	HeroPoints int
}

// SidebarMenuEntry is one sidebar tab button on the HUD panel.
type SidebarMenuEntry struct {
	Name     string
	Label    string
	Disabled bool
}

// ActionEntry is one row in the actions sidebar. UsesRemaining is nil when
// the action has no frequency limit.
type ActionEntry struct {
	ID            string
	Name          string
	Cost          string
	Kind          string // "strike", "blast", "stance", "action"
	Traits        []string
	UsesRemaining *int
	Enabled       bool
	Active        bool
}

// ActionSection groups action entries under one heading.
type ActionSection struct {
	Key     string
	Label   string
	Actions []ActionEntry
}

// ActionsSidebar is the assembled actions sidebar content.
type ActionsSidebar struct {
	Sections    []ActionSection
	CanDrawCard bool
}

// ScenePage holds data for the scene page template.
type ScenePage struct {
	Title     string
	SceneID   string
	SceneName string
	GridSize  float64
	Tokens    []SceneToken
	HasPlayer bool
	UserName  string
	InviteURL string
}

// SceneToken is one token placed on the scene page canvas.
type SceneToken struct {
	ID       string
	Name     string
	Category string
	X, Y     float64
	W, H     float64
}

// HomePage holds data for the scene list page.
type HomePage struct {
	Title  string
	Scenes []SceneListEntry
}

// SceneListEntry is one row on the home page.
type SceneListEntry struct {
	ID   string
	Name string
}
