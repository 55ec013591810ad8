// Package config holds settings of the mathlang tool stored in TOML.
package config

import (
	"bufio"
	"os"
	"reflect"

	"github.com/naoina/toml"
	"tlog.app/go/errors"
)

type (
	Config struct {
		REPL    REPL
		Compile Compile
	}

	REPL struct {
		Prompt  string
		History string `toml:",omitempty"` // file to keep line history in
		Debug   bool   // dump analyzed program of each line
	}

	Compile struct {
		Target string
		OutDir string `toml:",omitempty"`
	}
)

// TOML keys are the same as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return errors.New("field '%s' is not defined in %s", field, rt)
	},
}

func Default() Config {
	return Config{
		REPL: REPL{
			Prompt: "<shell>: ",
		},
		Compile: Compile{
			Target: "go",
		},
	}
}

// Load reads file over cfg. Fields missing in the file keep their values.
func Load(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return errors.Wrap(err, "open config")
	}

	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		return errors.New("%s, %v", file, err)
	}
	if err != nil {
		return errors.Wrap(err, "%s", file)
	}

	return nil
}

func Marshal(cfg *Config) ([]byte, error) {
	return tomlSettings.Marshal(cfg)
}
