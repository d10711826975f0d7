package project

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/vyPal/tacc/util"
	"gopkg.in/yaml.v3"
)

const FileName = "tacconf.yaml"

type TacConf struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Main        string      `yaml:"main"`
	Analysis    TacAnalysis `yaml:"analysis"`
	Report      TacReport   `yaml:"report"`
	Compiler    TacCompiler `yaml:"compiler"`
}

type TacAnalysis struct {
	WarnUnusedGlobals *bool `yaml:"warnUnusedGlobals,omitempty"`
}

type TacReport struct {
	Format  string `yaml:"format"`
	NoColor bool   `yaml:"noColor"`
	Tokens  bool   `yaml:"tokens"`
}

type TacCompiler struct {
	EmitLLVM     bool   `yaml:"emitLLVM"`
	Output       string `yaml:"output"`
	PrintGlobals bool   `yaml:"printGlobals"`
}

// WarnGlobals reports whether unused globals warn; true when the key is absent.
func (a TacAnalysis) WarnGlobals() bool {
	return a.WarnUnusedGlobals == nil || *a.WarnUnusedGlobals
}

func (c *TacConf) CreateDefault(name string) {
	if name == "." || name == "" {
		name = "NewProject"
	}
	warn := true
	c.Name = name
	c.Description = "A new tacc project"
	c.Main = "main.tac"
	c.Analysis = TacAnalysis{WarnUnusedGlobals: &warn}
	c.Report = TacReport{Format: "console"}
	c.Compiler = TacCompiler{Output: "main.ll"}
}

// Save writes the configuration to filepath. An existing file is replaced
// only when overwrite is set or the user confirms.
func (c *TacConf) Save(filepath string, overwrite bool) error {
	if _, err := os.Stat(filepath); !os.IsNotExist(err) {
		if !overwrite && !util.PromptYN(filepath+" already exists. Overwrite?", false) {
			return nil
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, yml, 0644)
}

func (c *TacConf) Validate() error {
	switch c.Report.Format {
	case "", "console", "json":
	default:
		return errors.New("report.format must be console or json")
	}
	return nil
}

// GetTacConf reads tacconf.yaml from dir.
func GetTacConf(dir string) (TacConf, error) {
	var conf TacConf

	file, err := os.Open(path.Join(dir, FileName))
	if err != nil {
		return TacConf{}, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&conf); err != nil {
		return TacConf{}, err
	}
	if err := conf.Validate(); err != nil {
		return TacConf{}, err
	}
	return conf, nil
}

// Load is GetTacConf that falls back to the defaults when dir has no
// tacconf.yaml.
func Load(dir string) (TacConf, error) {
	conf, err := GetTacConf(dir)
	if errors.Is(err, fs.ErrNotExist) {
		conf = TacConf{}
		conf.CreateDefault(filepath.Base(dir))
		conf.Main = ""
		return conf, nil
	}
	return conf, err
}
