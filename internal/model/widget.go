package model

const (
	WidgetTypeTable    = "table"
	WidgetTypeMarkdown = "markdown"
)

// WidgetDescriptor describes a dashboard panel backed by one of the proxy routes.
type WidgetDescriptor struct {
	Name            string        `json:"name" yaml:"name"`
	Description     string        `json:"description" yaml:"description"`
	Category        string        `json:"category" yaml:"category"`
	Type            string        `json:"type" yaml:"type"`
	SearchCategory  string        `json:"searchCategory" yaml:"searchCategory"`
	Endpoint        string        `json:"endpoint" yaml:"endpoint"`
	WidgetID        string        `json:"widgetId" yaml:"widgetId"`
	Params          []WidgetParam `json:"params" yaml:"params"`
	Data            *WidgetData   `json:"data,omitempty" yaml:"data"`
	Source          []string      `json:"source" yaml:"source"`
	RefetchInterval int           `json:"refetchInterval,omitempty" yaml:"refetchInterval"`
}

type WidgetParam struct {
	Name        string `json:"name" yaml:"name"`
	Label       string `json:"label" yaml:"label"`
	Type        string `json:"type" yaml:"type"`
	Default     string `json:"default" yaml:"default"`
	Description string `json:"description" yaml:"description"`
}

type WidgetData struct {
	Table *WidgetTable `json:"table,omitempty" yaml:"table"`
}

type WidgetTable struct {
	ShowAll     bool        `json:"showAll" yaml:"showAll"`
	ColumnsDefs []ColumnDef `json:"columnsDefs,omitempty" yaml:"columnsDefs"`
}

type ColumnDef struct {
	Field        string `json:"field" yaml:"field"`
	HeaderName   string `json:"headerName" yaml:"headerName"`
	CellDataType string `json:"cellDataType" yaml:"cellDataType"`
}
