// Package project parses conanbuild.toml, the optional per-project file
// declaring which Conan packages a build links against.
//
// Sections may carry conditional subsections whose key is an expression
// evaluated against the current target, and string values may interpolate
// {{...}} expressions:
//
//	[conan]
//	requires = ["zeromq"]
//	libcxx = true
//
//	[conan.'target_os == "Windows"']
//	optional = ["winpthreads"]
package project

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/pelletier/go-toml/v2"

	"github.com/Andrepuel/conan-build/internal/buildinfo"
)

// FileName is the per-project config filename.
const FileName = "conanbuild.toml"

type Config struct {
	Package PackageSection `toml:"package"`
	Conan   ConanSection   `toml:"conan"`
}

// PackageSection defines the [package] section
type PackageSection struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Authors     []string `toml:"authors"`
}

// ConanSection defines the [conan] section
type ConanSection struct {
	Requires []string `toml:"requires"`
	Optional []string `toml:"optional"`
	Libcxx   bool     `toml:"libcxx"`
}

// ConfigEnv is the expression environment conditional sections and {{...}}
// interpolations are evaluated against.
type ConfigEnv struct {
	TargetOS   string            `expr:"target_os"`
	TargetArch string            `expr:"target_arch"`
	Triple     string            `expr:"triple"`
	Environ    map[string]string `expr:"environ"`
}

// NewConfigEnv derives the expression environment from the host build
// info. The os/arch values are the Conan spellings ("Linux", "x86_64"),
// matching what the manifest settings carry.
func NewConfigEnv(info *buildinfo.BuildInfo, environ map[string]string) (ConfigEnv, error) {
	triple, err := info.Triple()
	if err != nil {
		return ConfigEnv{}, err
	}
	osName, _ := info.Setting("os")
	arch, _ := info.Setting("arch")
	return ConfigEnv{
		TargetOS:   osName,
		TargetArch: arch,
		Triple:     triple,
		Environ:    environ,
	}, nil
}

// ParseConfigFromFile parses a config file from a filepath.
func ParseConfigFromFile(path string, env ConfigEnv) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseConfig(bufio.NewReader(f), env)
}

func ParseConfig(rdr io.Reader, env ConfigEnv) (*Config, error) {
	var rawConfig map[string]any
	dec := toml.NewDecoder(rdr)
	if err := dec.Decode(&rawConfig); err != nil {
		if derr, ok := err.(*toml.DecodeError); ok {
			return nil, errors.New(derr.String())
		}
		return nil, err
	}

	processed, err := expandExpressions(rawConfig, env)
	if err != nil {
		return nil, fmt.Errorf("error processing expressions in config: %w", err)
	}
	rawConfig = processed.(map[string]any)

	cfg := new(Config)
	if err := unmarshalSection(rawConfig, "package", &cfg.Package); err != nil {
		return nil, err
	}
	if err := unmarshalConditionalSection(rawConfig, "conan", &cfg.Conan, env); err != nil {
		return nil, err
	}

	return cfg, nil
}

func mustMarshal(v any) string {
	b, err := toml.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// unmarshalSection parses a section without conditional logic
func unmarshalSection(rawCfg map[string]any, name string, dst any) error {
	if data, ok := rawCfg[name]; ok {
		if err := toml.Unmarshal([]byte(mustMarshal(data)), dst); err != nil {
			return fmt.Errorf("failed to parse [%s] section: %w", name, err)
		}
	}
	return nil
}

// unmarshalConditionalSection parses a section whose subsections may be
// keyed by expressions; matching subsections are merged into dst.
func unmarshalConditionalSection[T any](rawCfg map[string]any, name string, dst *T, env ConfigEnv) error {
	sectionData, ok := rawCfg[name]
	if !ok {
		return nil
	}

	sectionMap, ok := sectionData.(map[string]any)
	if !ok {
		return fmt.Errorf("invalid [%s] section format: expected a table", name)
	}

	baseFields := make(map[string]any)
	conditionalFields := make(map[string]map[string]any)

	for key, val := range sectionMap {
		if subMap, ok := val.(map[string]any); ok {
			if _, err := expr.Compile(key, expr.Env(env)); err == nil {
				conditionalFields[key] = subMap
				continue
			}
		}
		baseFields[key] = val
	}

	if len(baseFields) > 0 {
		if err := toml.Unmarshal([]byte(mustMarshal(baseFields)), dst); err != nil {
			return fmt.Errorf("failed to parse base [%s] section: %w", name, err)
		}
	}

	for expression, condMap := range conditionalFields {
		program, err := expr.Compile(expression, expr.Env(env))
		if err != nil {
			return fmt.Errorf("failed to compile expression for [%s.%q]: %w", name, expression, err)
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return fmt.Errorf("failed to run expression for [%s.%q]: %w", name, expression, err)
		}

		if matched, ok := result.(bool); !ok || !matched {
			continue
		}

		var condSection T
		if err := toml.Unmarshal([]byte(mustMarshal(condMap)), &condSection); err != nil {
			return fmt.Errorf("failed to parse conditional section [%s.%q]: %w", name, expression, err)
		}
		if err := mergeSections(dst, condSection); err != nil {
			return fmt.Errorf("failed to merge conditional section [%s.%q]: %w", name, expression, err)
		}
	}

	return nil
}

// mergeSections merges the fields of the src section into dst: slices
// append, bools or together, everything else overwrites when non-zero.
func mergeSections(dst, src any) error {
	dstVal := reflect.ValueOf(dst)
	if dstVal.Kind() != reflect.Pointer || dstVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dst must be a pointer to a struct")
	}

	dstElem := dstVal.Elem()
	srcVal := reflect.ValueOf(src)
	if srcVal.Type() != dstElem.Type() {
		return fmt.Errorf("dst and src must be of the same struct type")
	}

	for i := 0; i < srcVal.NumField(); i++ {
		srcField := srcVal.Field(i)
		dstField := dstElem.Field(i)
		if !dstField.CanSet() {
			continue
		}

		switch dstField.Kind() {
		case reflect.Slice:
			if !srcField.IsNil() {
				dstField.Set(reflect.AppendSlice(dstField, srcField))
			}
		case reflect.Bool:
			dstField.SetBool(dstField.Bool() || srcField.Bool())
		default:
			if !srcField.IsZero() {
				dstField.Set(srcField)
			}
		}
	}

	return nil
}

var exprRegex = regexp.MustCompile(`\{\{(.+?)\}\}`)

// expandString finds and evaluates all {{...}} expressions in a string
func expandString(s string, env ConfigEnv) (string, error) {
	matches := exprRegex.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var builder strings.Builder
	lastIndex := 0

	for _, matchIndexes := range matches {
		builder.WriteString(s[lastIndex:matchIndexes[0]])

		expression := strings.TrimSpace(s[matchIndexes[2]:matchIndexes[3]])
		program, err := expr.Compile(expression, expr.Env(env))
		if err != nil {
			return "", fmt.Errorf("failed to compile expression %q: %w", expression, err)
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return "", fmt.Errorf("failed to run expression %q: %w", expression, err)
		}

		builder.WriteString(fmt.Sprintf("%v", result))
		lastIndex = matchIndexes[1]
	}

	builder.WriteString(s[lastIndex:])

	return builder.String(), nil
}

// expandExpressions recursively walks the parsed TOML data and evaluates
// expressions in strings
func expandExpressions(data any, env ConfigEnv) (any, error) {
	switch v := data.(type) {
	case map[string]any:
		for key, val := range v {
			processed, err := expandExpressions(val, env)
			if err != nil {
				return nil, err
			}
			v[key] = processed
		}
		return v, nil
	case []any:
		for i, item := range v {
			processed, err := expandExpressions(item, env)
			if err != nil {
				return nil, err
			}
			v[i] = processed
		}
		return v, nil
	case string:
		return expandString(v, env)
	default:
		return data, nil
	}
}
