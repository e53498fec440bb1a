package config

import (
	"github.com/allape/gogger"
	"github.com/allape/openpad/envar"
	"github.com/allape/openpad/pad/button"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strings"
)

var l = gogger.New("config")

const DefaultConfigPath = "openpad.toml"

type OutputDriverType string

const (
	OutputNone       OutputDriverType = "none"
	OutputSerialPort OutputDriverType = "serialport"
	OutputShell      OutputDriverType = "shell"
)

type Pad struct {
	// Sticky makes every button latch on click instead of following the pointer
	Sticky bool `toml:"sticky" yaml:"sticky"`
}

type Websocket struct {
	Addr string `toml:"addr" yaml:"addr"`
	Path string `toml:"path" yaml:"path"`
	Cors bool   `toml:"cors" yaml:"cors"`
}

type UI struct {
	// Path overrides the embedded page with a file on disk
	Path string `toml:"path" yaml:"path"`
}

type ShellCommands struct {
	Open    []string `toml:"open" yaml:"open"`
	Press   []string `toml:"press" yaml:"press"`
	Release []string `toml:"release" yaml:"release"`
}

type Output struct {
	Type OutputDriverType `toml:"type" yaml:"type"`
	Src  string           `toml:"src" yaml:"src"`
	Ext  SerialPortExt    `toml:"ext" yaml:"ext"`

	AButton string `toml:"a_btn" yaml:"a_btn"`
	BButton string `toml:"b_btn" yaml:"b_btn"`
	XButton string `toml:"x_btn" yaml:"x_btn"`
	YButton string `toml:"y_btn" yaml:"y_btn"`

	Shell ShellCommands `toml:"shell" yaml:"shell"`
}

func (o Output) Pins() map[button.ID]string {
	pins := make(map[button.ID]string, len(button.IDs))
	for _, id := range button.IDs {
		var pin string
		switch id {
		case button.A:
			pin = o.AButton
		case button.B:
			pin = o.BButton
		case button.X:
			pin = o.XButton
		case button.Y:
			pin = o.YButton
		}
		if pin != "" {
			pins[id] = pin
		}
	}
	return pins
}

type Journal struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Path of the journal file, stdout when empty
	Path string `toml:"path" yaml:"path"`
}

type Render struct {
	Size int `toml:"size" yaml:"size"`
}

type Config struct {
	Pad       Pad       `toml:"pad" yaml:"pad"`
	Websocket Websocket `toml:"websocket" yaml:"websocket"`
	UI        UI        `toml:"ui" yaml:"ui"`
	Output    Output    `toml:"output" yaml:"output"`
	Journal   Journal   `toml:"journal" yaml:"journal"`
	Render    Render    `toml:"render" yaml:"render"`
}

func Default() Config {
	return Config{
		Pad: Pad{
			Sticky: false,
		},
		Websocket: Websocket{
			Addr: ":8080",
			Path: "/websocket",
		},
		Output: Output{
			Type: OutputNone,
		},
		Render: Render{
			Size: 200,
		},
	}
}

func Unmarshal(path string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	default:
		return toml.Unmarshal(data, config)
	}
}

// Load reads the file over the defaults, values missing from the file keep their default.
func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	err = Unmarshal(path, data, &config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// Path picks the config file: first argument, then OPENPAD_CONFIG, then DefaultConfigPath.
func Path(args []string) string {
	if len(args) > 1 && args[1] != "" {
		return args[1]
	}
	return envar.Getenv(envar.OpenpadConfig, DefaultConfigPath)
}

// GetConfig falls back to the defaults when the file does not exist.
func GetConfig() (Config, error) {
	configFile := Path(os.Args)

	l.Info().Println("reading config file:", configFile)

	_, err := os.Stat(configFile)
	if os.IsNotExist(err) {
		l.Warn().Println("config file not found, using defaults")
		return Default(), nil
	}

	config, err := Load(configFile)
	if err != nil {
		return config, err
	}

	l.Verbose().Println("use config:", config)

	return config, nil
}
