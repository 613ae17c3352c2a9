package spec

// ExamConfig is the exam-level configuration declared in the BEGIN EXAM cell
// of the master notebook. Zero values are filled in by config.Normalize.
type ExamConfig struct {
	Name            string           `yaml:"name"`
	NumExams        int              `yaml:"num_exams"`
	Students        []string         `yaml:"students"`
	Seed            int64            `yaml:"seed"`
	Strict          bool             `yaml:"strict"`
	Format          string           `yaml:"format"`
	PublicTests     bool             `yaml:"public_tests"`
	InitCell        *bool            `yaml:"init_cell"`
	CheckAllCell    *bool            `yaml:"check_all_cell"`
	ExportCell      ExportCellConfig `yaml:"export_cell"`
	Workers         int              `yaml:"workers"`
	Endpoint        string           `yaml:"endpoint"`
	Service         ServiceConfig    `yaml:"service"`
	SaveEnvironment bool             `yaml:"save_environment"`
	IgnoreModules   []string         `yaml:"ignore_modules"`
	Variables       map[string]string `yaml:"variables"`
}

// ServiceConfig configures submission to an Otter Service deployment.
type ServiceConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Auth         string `yaml:"auth"`
	AssignmentID string `yaml:"assignment_id"`
	ClassID      string `yaml:"class_id"`
	Notebook     string `yaml:"notebook"`
}

// ExportCellConfig controls the submission/export cells appended to each
// generated notebook. In the master it may be written as a bare boolean or as
// a mapping with instructions and PDF options.
type ExportCellConfig struct {
	Enabled      *bool
	Instructions string
	PDF          *bool
	Filtering    *bool
}

// QuestionConfig is the per-question configuration declared in a BEGIN
// QUESTION cell. Points is a pointer so an explicit "points: 0" (an ungraded
// question) stays distinct from an omitted value.
type QuestionConfig struct {
	ID     string   `yaml:"id"`
	Points *float64 `yaml:"points"`
	Manual bool     `yaml:"manual"`
	Tags   []string `yaml:"tags"`
}

// On reports whether the export cell is enabled (the default).
func (e ExportCellConfig) On() bool {
	return e.Enabled == nil || *e.Enabled
}
