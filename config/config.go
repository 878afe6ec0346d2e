package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// settings for the external programs invoked by a run
type toolsConfig struct {
	// NCBI datasets command-line tool (download, rehydrate)
	Datasets string `yaml:"datasets"`
	// NCBI dataformat command-line tool (metadata reformatting)
	Dataformat string `yaml:"dataformat"`
	// archive extraction tool
	Unzip string `yaml:"unzip"`
	// shell used for shell-command templates when -sh is given
	Shell string `yaml:"shell"`
	// interpreter used for code templates (-p, -pf)
	Interpreter string `yaml:"interpreter"`
}

// Config holds all options governing a single run. It is resolved once from the
// command line (and optionally a YAML file) and passed explicitly to the
// pipeline.
type Config struct {
	// genome NCBI accession (e.g. GCA_000209535.1)
	Accession string `yaml:"accession"`
	// folder into which data are downloaded
	OutputDir string `yaml:"output_dir"`
	// inline shell-command template
	Command string `yaml:"command,omitempty"`
	// file from which a shell-command template is read
	CommandFile string `yaml:"command_file,omitempty"`
	// inline code template
	Code string `yaml:"code,omitempty"`
	// file from which a code template is read
	CodeFile string `yaml:"code_file,omitempty"`
	// if true, the working directory is left in place after the run
	Keep bool `yaml:"keep"`
	// if true, shell-command templates are run through Tools.Shell
	UseShell bool `yaml:"use_shell"`
	// maximum number of concurrent downloads during rehydration
	Workers int `yaml:"workers"`
	// temporary folder (accepted for compatibility, not used)
	TempDir string `yaml:"temp_dir"`
	// path to the sqlite run journal (optional)
	Journal string `yaml:"journal,omitempty"`
	// external programs
	Tools toolsConfig `yaml:"tools"`
	// if true, the resolved options are printed and no run occurs
	PrintOptions bool `yaml:"-"`
}

// this struct performs the unmarshalling of a YAML config file
type configFile struct {
	Tools   toolsConfig `yaml:"tools"`
	Journal string      `yaml:"journal"`
}

// Returns a configuration with every default in place.
func Default() Config {
	return Config{
		OutputDir: "./",
		Workers:   1,
		TempDir:   "/tmp/",
		Tools: toolsConfig{
			Datasets:    "datasets",
			Dataformat:  "dataformat",
			Unzip:       "unzip",
			Shell:       "/bin/sh",
			Interpreter: "python3",
		},
	}
}

// Reads tool settings and the journal location from the given YAML data into
// the receiver. All environment variables of the form ${ENV_VAR} are expanded.
// Fields absent from the YAML data keep their current values.
func (c *Config) Read(bytes []byte) error {
	bytes = []byte(os.ExpandEnv(string(bytes)))

	conf := configFile{
		Tools:   c.Tools,
		Journal: c.Journal,
	}
	err := yaml.Unmarshal(bytes, &conf)
	if err != nil {
		slog.Error(fmt.Sprintf("Couldn't parse configuration data: %s", err))
		return err
	}
	c.Tools = conf.Tools
	c.Journal = conf.Journal
	return c.validateTools()
}

// Reads the YAML configuration file at the given path into the receiver.
func (c *Config) LoadFile(path string) error {
	slog.Debug(fmt.Sprintf("Reading configuration from '%s'", path))
	bytes, err := os.ReadFile(path)
	if err != nil {
		return &FileError{Option: "-config", Path: path, Err: err}
	}
	return c.Read(bytes)
}

func (c Config) validateTools() error {
	tools := map[string]string{
		"tools.datasets":    c.Tools.Datasets,
		"tools.dataformat":  c.Tools.Dataformat,
		"tools.unzip":       c.Tools.Unzip,
		"tools.shell":       c.Tools.Shell,
		"tools.interpreter": c.Tools.Interpreter,
	}
	for name, value := range tools {
		if strings.TrimSpace(value) == "" {
			return &InvalidOptionError{Option: name, Message: "must not be blank"}
		}
	}
	return nil
}

// Validate checks the options required before any external program is
// invoked.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return &MissingOptionError{Option: "-o", Description: "an output folder"}
	}
	if c.Accession == "" {
		return &MissingOptionError{Option: "-a", Description: "an accession"}
	}
	if c.Workers < 1 {
		return &InvalidOptionError{
			Option:  "-w",
			Message: fmt.Sprintf("%d (must be positive)", c.Workers),
		}
	}
	return c.validateTools()
}

// HasCommands returns true if any user template was supplied.
func (c Config) HasCommands() bool {
	return c.Command != "" || c.CommandFile != "" || c.Code != "" || c.CodeFile != ""
}

// ShellTemplate returns the shell-command template, or an empty string if
// none was given. Inline text (-c) takes precedence over a file (-cf).
func (c Config) ShellTemplate() (string, error) {
	return template(c.Command, "-cf", c.CommandFile)
}

// CodeTemplate returns the code template, or an empty string if none was
// given. Inline text (-p) takes precedence over a file (-pf).
func (c Config) CodeTemplate() (string, error) {
	return template(c.Code, "-pf", c.CodeFile)
}

// template files are read line by line, with each line stripped of
// surrounding whitespace
func template(inline, option, path string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if path == "" {
		return "", nil
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Option: option, Path: path, Err: err}
	}
	lines := strings.Split(strings.TrimSuffix(string(bytes), "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "\n"), nil
}

// YAML renders the resolved options.
func (c Config) YAML() (string, error) {
	bytes, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
