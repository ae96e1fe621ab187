// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvFile names the environment variable holding an explicit config path.
	EnvFile = "DEPLOYGEN_CFG_FILE"

	// FileName is the config file looked up in os.UserConfigDir.
	FileName = "deploygen.yaml"
)

// Type is a loaded configuration file.
type Type struct {
	// Source is the absolute path of the file.
	Source string
	// Namespace, usually the running command, is tried as a key prefix
	// before the bare key, so "generate.output" wins over "output".
	Namespace string
	Data      map[string]interface{}
}

// Config holds the global, lazily-initialized configuration instance.
var Config Type

// A missing config file is not an error at start up.
func init() {
	_, _ = Load()
}

// value resolves key and converts it. When the key is missing and a single
// default is given, the default is returned instead of the lookup error.
func value[T any](key string, conv func(any) (T, bool), defaultValue []T) (T, error) {
	var zero T
	val, err := Config.lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return zero, err
	}

	v, ok := conv(val)
	if !ok {
		return zero, fmt.Errorf("%s: value is not a %T", key, zero)
	}
	return v, nil
}

// GetBool returns the boolean at the dotted key path.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	return value(key, func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	}, defaultValue)
}

// GetInt returns the integer at the dotted key path. YAML numbers decode as
// int, int64 or float64.
func GetInt(key string, defaultValue ...int) (int, error) {
	return value(key, func(v any) (int, bool) {
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
		return 0, false
	}, defaultValue)
}

// GetString returns the string at the dotted key path.
func GetString(key string, defaultValue ...string) (string, error) {
	return value(key, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	}, defaultValue)
}

// GetStringSlice returns the string list at the dotted key path. Every
// element must be a string.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	return value(key, func(v any) ([]string, bool) {
		switch list := v.(type) {
		case []string:
			return list, true
		case []interface{}:
			out := make([]string, len(list))
			for i, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, false
				}
				out[i] = s
			}
			return out, true
		}
		return nil, false
	}, defaultValue)
}

// Load reads the configuration file into the global Config. A .env file in
// the working directory is loaded into the environment first so DEPLOYGEN_*
// variables, including DEPLOYGEN_CFG_FILE, may live there.
func Load() (Type, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Debugf("ignoring .env: %v", err)
	}

	path, err := getConfigFile()
	if err != nil {
		return Type{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	Config = Type{Source: path, Data: data}

	return Config, nil
}

// lookup loads the config lazily and resolves key, namespaced first.
func (cfg *Type) lookup(key string) (any, error) {
	if len(cfg.Data) == 0 {
		_, _ = Load()
	}
	return cfg.get(key)
}

// get walks a dotted key such as "defaults.sheet.menu" through the tree.
func (cfg *Type) get(kspec string) (any, error) {
	candidates := []string{kspec}
	if cfg.Namespace != "" {
		candidates = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidates {
		if v, ok := walk(cfg.Data, strings.Split(key, ".")); ok {
			return v, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidates)
}

func walk(node any, parts []string) (any, bool) {
	for _, part := range parts {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if node, ok = m[part]; !ok {
			return nil, false
		}
	}
	return node, true
}

// getConfigFile resolves the config path: DEPLOYGEN_CFG_FILE when set,
// otherwise deploygen.yaml under os.UserConfigDir.
func getConfigFile() (string, error) {
	if cfgPath := os.Getenv(EnvFile); cfgPath != "" {
		fileInfo, err := os.Stat(cfgPath)
		if err != nil {
			return "", fmt.Errorf("config file not found at %s path: %s", EnvFile, cfgPath)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("%s points to a directory: %s", EnvFile, cfgPath)
		}
		log.Debugf("using config file from %s: %s", EnvFile, cfgPath)
		return filepath.Abs(cfgPath)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, FileName)
	if fileInfo, err := os.Stat(file); err == nil && !fileInfo.IsDir() {
		log.Debugf("using config file: %s", file)
		return file, nil
	}

	return "", fmt.Errorf("no config file found in standard locations")
}
