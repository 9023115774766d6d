package render

// Theme - явная цветовая схема атласа; никаких глобальных настроек
type Theme struct {
	Name       string
	Background string
	TileFill   string
	TileStroke string
	Path       string
	Endpoint   string
	Label      string
	PathWidth  int
	LabelSize  int
}

var themes = map[string]Theme{
	"dark": {
		Name:       "dark",
		Background: "#1b1f27",
		TileFill:   "#232834",
		TileStroke: "#3a4152",
		Path:       "#6ec6ff",
		Endpoint:   "#ffd166",
		Label:      "#e8eaf0",
		PathWidth:  2,
		LabelSize:  14,
	},
	"light": {
		Name:       "light",
		Background: "#f5f5f0",
		TileFill:   "#ffffff",
		TileStroke: "#d0d0c8",
		Path:       "#1565c0",
		Endpoint:   "#e65100",
		Label:      "#30343c",
		PathWidth:  2,
		LabelSize:  14,
	},
}

// ThemeByName возвращает схему по имени; неизвестное имя дает "dark"
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["dark"]
}
