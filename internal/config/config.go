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
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in os.UserConfigDir.
const FileName = "ec2snap.yaml"

// FileEnv names the env var that overrides the config file location.
const FileEnv = "EC2SNAP_CFG_FILE"

// Type is a loaded ec2snap.yaml. Keys are looked up under Namespace (the
// running command, e.g. "prune") before the top level.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config is the file loaded by the most recent Load.
var Config Type

var (
	// ErrNoConfigFile means neither EC2SNAP_CFG_FILE nor the user config dir
	// supplied a file. Every setting also has a flag or env var.
	ErrNoConfigFile = errors.New("no config file found in standard locations")
	// ErrKeyNotFound means no candidate key exists in the file.
	ErrKeyNotFound = errors.New("config key not found")
	// ErrWrongType means the key exists but holds another kind of value.
	ErrWrongType = errors.New("config value has the wrong type")
)

// GetInt returns the int at key, or the default when the key is absent.
// YAML floats are truncated.
func GetInt(key string, defaultValue ...int) (int, error) {
	return lookup(key, defaultValue, func(v any) (int, bool) {
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
		return 0, false
	})
}

// GetString returns the string at key, or the default when the key is absent.
func GetString(key string, defaultValue ...string) (string, error) {
	return lookup(key, defaultValue, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
}

// GetStringSlice returns the list of strings at key, or the default when the
// key is absent. It backs the @<set> argument shorthand.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	return lookup(key, defaultValue, func(v any) ([]string, bool) {
		items, ok := v.([]interface{})
		if !ok {
			return nil, false
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	})
}

// lookup loads the file on first use, resolves key and converts the value.
func lookup[T any](key string, defaultValue []T, convert func(any) (T, bool)) (T, error) {
	var zero T
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	raw, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return zero, err
	}

	v, ok := convert(raw)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T", ErrWrongType, key, raw)
	}
	return v, nil
}

// Load parses the config file into Config. The first namespace, if any,
// becomes Config.Namespace.
func Load(namespace ...string) (Type, error) {
	path, err := File()
	if err != nil {
		return Type{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{Source: path, Data: data}
	if len(namespace) > 0 {
		Config.Namespace = namespace[0]
	}
	log.Debugf("config loaded: source=%s namespace=%s keys=%d", path, Config.Namespace, len(data))

	return Config, nil
}

// get walks the dotted key, trying "<Namespace>.<key>" first.
func (cfg *Type) get(key string) (any, error) {
	candidates := []string{key}
	if cfg.Namespace != "" {
		candidates = []string{cfg.Namespace + "." + key, key}
	}

	for _, candidate := range candidates {
		if v, ok := walk(cfg.Data, strings.Split(candidate, ".")); ok {
			return v, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, strings.Join(candidates, ", "))
}

func walk(node any, path []string) (any, bool) {
	for _, part := range path {
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

// File locates the config file. EC2SNAP_CFG_FILE, when set, must name an
// existing regular file. Otherwise FileName in os.UserConfigDir is used if
// present.
func File() (string, error) {
	if path := os.Getenv(FileEnv); path != "" {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			return "", fmt.Errorf("config file not found at %s path: %s", FileEnv, path)
		case info.IsDir():
			return "", fmt.Errorf("%s points to a directory: %s", FileEnv, path)
		}
		log.Debugf("config file from %s: %s", FileEnv, path)
		return path, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		log.Debugf("config file: %s", path)
		return path, nil
	}

	return "", ErrNoConfigFile
}
