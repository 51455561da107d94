package teller

type Config struct {
	Accounts struct {
		File string `yaml:"file"`
	} `yaml:"accounts"`
	Session struct {
		LogDir       string `yaml:"log_dir"`
		PDFStatement bool   `yaml:"pdf_statement"`
	} `yaml:"session"`
}
