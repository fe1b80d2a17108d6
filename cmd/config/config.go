package config

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Format is the encoding of the config file
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatOf returns the format by the extension of the path, TOML is the default
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// LoadFile parse the config from the file of the path
func LoadFile(path string, v interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	return LoadReader(file, FormatOf(path), v)
}

// LoadString parse the config from the string
func LoadString(data string, format Format, v interface{}) error {
	return LoadReader(bytes.NewReader([]byte(data)), format, v)
}

// LoadReader parse the config from the file of the reader
func LoadReader(r io.Reader, format Format, v interface{}) error {
	switch format {
	case FormatYAML:
		bs, err := ioutil.ReadAll(r)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := yaml.UnmarshalStrict(bs, v); err != nil {
			return errors.WithStack(err)
		}
	default:
		if _, err := toml.DecodeReader(r, v); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// LoadEnv loads the dotenv files into the process environment
// missing files are skipped and the variables already set are kept
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

// Env returns the environment variable or the default when it is empty
func Env(key string, def string) string {
	if v := os.Getenv(key); len(v) > 0 {
		return v
	}
	return def
}
