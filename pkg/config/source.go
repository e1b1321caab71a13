package config

import (
	"errors"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source produces raw configuration values keyed by field name.
// String values are converted by the field's property before validation;
// other values are validated as they are.
type Source interface {
	Values() (map[string]any, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (map[string]any, error)

func (f SourceFunc) Values() (map[string]any, error) {
	return f()
}

// EnvSource reads the process environment.
func EnvSource() Source {
	return SourceFunc(func() (map[string]any, error) {
		return fromStrings(env.ToMap(os.Environ())), nil
	})
}

// MapSource serves fixed text values, as an environment would.
func MapSource(values map[string]string) Source {
	return SourceFunc(func() (map[string]any, error) {
		return fromStrings(values), nil
	})
}

// DotEnvSource reads .env files without touching the process environment.
// Later files win over earlier ones.
func DotEnvSource(paths ...string) Source {
	return SourceFunc(func() (map[string]any, error) {
		out := make(map[string]string)
		for _, path := range paths {
			values, err := godotenv.Read(path)
			if err != nil {
				return nil, errors.Join(ErrReadSource, ErrLoadEnvFile, err)
			}
			for k, v := range values {
				out[k] = v
			}
		}
		return fromStrings(out), nil
	})
}

// YAMLSource reads a flat YAML mapping. Scalars keep their YAML types.
func YAMLSource(r io.Reader) Source {
	return SourceFunc(func() (map[string]any, error) {
		out := make(map[string]any)
		if err := yaml.NewDecoder(r).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Join(ErrReadSource, err)
		}
		return out, nil
	})
}

// Layered merges sources in order; later sources win.
func Layered(sources ...Source) Source {
	return SourceFunc(func() (map[string]any, error) {
		out := make(map[string]any)
		for _, src := range sources {
			values, err := src.Values()
			if err != nil {
				return nil, err
			}
			for k, v := range values {
				out[k] = v
			}
		}
		return out, nil
	})
}

func fromStrings(values map[string]string) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
