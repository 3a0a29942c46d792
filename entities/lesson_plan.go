package entities

type Descriptor struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type Lesson struct {
	Aula        int          `json:"aula"`
	Titulo      string       `json:"titulo"`
	TituloVideo string       `json:"tituloVideo"`
	Objetivos   []string     `json:"objetivos"`   // target: exactly 3, not enforced
	Conteudos   []string     `json:"conteudos"`   // target: exactly 3, not enforced
	Descritores []Descriptor `json:"descritores"`
}

type SuggestedSite struct {
	URL  string `json:"url"`
	Aula int    `json:"aula"`
}

type ToolsAndSites struct {
	Ferramentas    []string        `json:"ferramentas"`
	SitesSugeridos []SuggestedSite `json:"sitesSugeridos"`
}

// LessonPlan is the render-ready record returned by the extraction pipeline.
// Every slice is non-nil once normalized so it serializes as [] rather than null.
type LessonPlan struct {
	UnidadeConteudo  string        `json:"unidadeConteudo"`
	Habilidades      []string      `json:"habilidades"`
	UnidadeObjetivos []string      `json:"unidadeObjetivos"`
	Aulas            []Lesson      `json:"aulas"`
	SitesFerramentas ToolsAndSites `json:"sitesFerramentas"`
}
