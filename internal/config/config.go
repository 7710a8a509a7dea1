// Copyright © 2025 Steve Taranto staranto@gmail.com
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

// FileName is the config file looked up in the standard locations.
const FileName = "easyconvert.yaml"

// ErrNoConfigFile means none of the standard locations held a config file.
// The file is optional, so callers usually ignore it.
var ErrNoConfigFile = errors.New("no config file found in standard locations")

// Type is the parsed config file. Lookups use dotted key paths, optionally
// tried under Namespace first.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Load reads the config file. EASYCONVERT_CFG, when set, must name a readable
// file; otherwise XDG_CONFIG_HOME, APPDATA and HOME are searched in order.
func Load(namespace ...string) (Type, error) {
	path, err := getConfigPath()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := Type{
		Source: path,
		Data:   data,
	}
	if len(namespace) > 0 {
		cfg.Namespace = namespace[0]
	}

	return cfg, nil
}

// get traverses the map using a dotted key path
func (cfg Type) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		var current interface{} = cfg.Data

		success := true
		for _, part := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[part]
			if !ok {
				success = false
				break
			}
		}

		if success {
			return current, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidateKeys)
}

// Has reports whether key resolves to a value.
func (cfg Type) Has(key string) bool {
	_, err := cfg.get(key)
	return err == nil
}

func (cfg Type) GetString(key string, defaultValue ...string) (string, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}

	return s, nil
}

func (cfg Type) GetInt(key string, defaultValue ...int) (int, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.New("value is not an int")
	}
}

// GetScalar returns the value at key rendered as a string, regardless of the
// YAML type it was parsed as. It is what the env-style settings use, since
// "6379" and 6379 should mean the same thing.
func (cfg Type) GetScalar(key string) (string, bool) {
	val, err := cfg.get(key)
	if err != nil || val == nil {
		return "", false
	}
	switch v := val.(type) {
	case map[string]interface{}, []interface{}:
		return "", false
	case string:
		return v, true
	default:
		return fmt.Sprint(v), true
	}
}

func getConfigPath() (string, error) {
	if p, ok := os.LookupEnv("EASYCONVERT_CFG"); ok && p != "" {
		fi, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", p)
		}
		if fi.IsDir() {
			return "", fmt.Errorf("EASYCONVERT_CFG points to a directory: %s", p)
		}
		return p, nil
	}

	candidates := []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, FileName)
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}
	return "", ErrNoConfigFile
}
