package domain

type RenderKind string

const (
	RenderHeader RenderKind = "header"
	RenderBack   RenderKind = "back"
	RenderFolder RenderKind = "folder"
	RenderFile   RenderKind = "file"
)

type Action string

const (
	ActionOpen     Action = "open"
	ActionDownload Action = "download"
	ActionDelete   Action = "delete"
)

// RenderInstruction одна строка отображаемого листинга.
// Path это путь, который передаётся в действие (для back это родитель).
type RenderInstruction struct {
	Kind    RenderKind
	Label   string
	Path    string
	Actions []Action
}
