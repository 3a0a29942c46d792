package types

// TranscriptHeading introduces the transcript section of the extraction
// prompt; everything after it is the recorded lesson script.
const TranscriptHeading = "Roteiro de gravação:"

// Kind is the JSON type of a schema node.
type Kind string

const (
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindString  Kind = "string"
	KindInteger Kind = "integer"
)

// Schema is a provider-neutral description of the structured output. Each
// completion backend converts it into its own request format.
type Schema struct {
	Type        Kind
	Description string
	Properties  map[string]*Schema
	Order       []string // property order, also the required list for objects
	Items       *Schema
}

// Required lists the properties a conformant object must carry.
func (s *Schema) Required() []string {
	if s == nil || s.Type != KindObject {
		return nil
	}
	return append([]string(nil), s.Order...)
}

func object(desc string, props ...prop) *Schema {
	s := &Schema{Type: KindObject, Description: desc, Properties: make(map[string]*Schema, len(props))}
	for _, p := range props {
		s.Properties[p.name] = p.schema
		s.Order = append(s.Order, p.name)
	}
	return s
}

type prop struct {
	name   string
	schema *Schema
}

func field(name string, s *Schema) prop { return prop{name: name, schema: s} }

func str(desc string) *Schema { return &Schema{Type: KindString, Description: desc} }
func integer(desc string) *Schema { return &Schema{Type: KindInteger, Description: desc} }
func array(desc string, items *Schema) *Schema {
	return &Schema{Type: KindArray, Description: desc, Items: items}
}

// LessonPlanSchema mirrors entities.LessonPlan minus habilidades, which is
// always rebuilt from the reference data and never requested from the model.
func LessonPlanSchema() *Schema {
	descriptor := object("",
		field("id", str("O código do descritor. Exemplo: D88")),
		field("description", str("A descrição completa do descritor, copiada da lista fornecida.")),
	)

	lesson := object("",
		field("aula", integer("O número da aula. Exemplo: 1")),
		field("titulo", str("Título conciso e informativo para a aula.")),
		field("tituloVideo", str("Título para o vídeo, diferente do título da aula.")),
		field("objetivos", array("Exatamente 3 objetivos de aprendizagem, cada um iniciado por um verbo.", str(""))),
		field("conteudos", array("Exatamente 3 conceitos técnicos principais abordados na aula.", str(""))),
		field("descritores", array("Descritores da aula, escolhidos apenas da lista fornecida.", descriptor)),
	)

	site := object("",
		field("url", str("O URL completo do site sugerido.")),
		field("aula", integer("O número da aula à qual o site se refere.")),
	)

	tools := object("Ferramentas utilizadas e sites sugeridos para a unidade.",
		field("ferramentas", array("URLs das ferramentas principais usadas nas aulas (IDEs, simuladores).", str(""))),
		field("sitesSugeridos", array("No máximo 5 links 'Para Saber Mais', cada um com a aula correspondente.", site)),
	)

	return object("",
		field("sitesFerramentas", tools),
		field("unidadeConteudo", str("Texto breve e comercial sobre a unidade, destinado a docentes.")),
		field("unidadeObjetivos", array("Até 5 objetivos de aprendizagem da unidade, sintetizados a partir das aulas.", str(""))),
		field("aulas", array("Todas as aulas encontradas no roteiro, na ordem em que aparecem.", lesson)),
	)
}
