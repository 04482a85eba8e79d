package domain

// Upload result statuses
const (
	UploadStatusOK    = "ok"
	UploadStatusError = "erro"
)

// UploadFile is one photo received for an invoice
type UploadFile struct {
	Field    string
	Filename string
	Data     []byte
}

// UploadResult describes what happened to one uploaded photo
type UploadResult struct {
	Category Category `json:"categoria,omitempty"`
	File     string   `json:"arquivo"`
	Path     string   `json:"caminho,omitempty"`
	URL      string   `json:"url,omitempty"`
	Status   string   `json:"status"`
	Error    string   `json:"erro,omitempty"`
}

// UploadFields lists the recognized upload form fields in processing order
var UploadFields = []string{"conferencia", "placa", "carga1", "carga2", "canhoto"}

// fieldCategories maps upload form fields to their category
var fieldCategories = map[string]Category{
	"conferencia": CategoryConferencia,
	"placa":       CategoryCarga,
	"carga1":      CategoryCarga,
	"carga2":      CategoryCarga,
	"canhoto":     CategoryCanhoto,
}

// CategoryForField returns the category an upload form field belongs to
func CategoryForField(field string) (Category, bool) {
	c, ok := fieldCategories[field]
	return c, ok
}
