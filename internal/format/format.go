// Copyright (c) 2026 The keyconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package format parses configuration documents into flat properties.
package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"

	"github.com/nil-go/keyconf/internal/maps"
)

// Unmarshal parses a document into flat properties.
type Unmarshal func(data []byte) (map[string]string, error)

// For returns the Unmarshal for the file extension of name.
func For(name string) (Unmarshal, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if unmarshal, ok := unmarshals[ext]; ok {
		return unmarshal, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
}

// Properties parses a Java properties document. ${key} references are kept as they are.
func Properties(data []byte) (map[string]string, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal properties: %w", err)
	}

	return props.Map(), nil
}

// YAML parses a YAML document and flattens nested keys with dots.
func YAML(data []byte) (map[string]string, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	return maps.Flatten(values, delimiter), nil
}

// TOML parses a TOML document and flattens nested keys with dots.
func TOML(data []byte) (map[string]string, error) {
	var values map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unmarshal toml: %w", err)
	}

	return maps.Flatten(values, delimiter), nil
}

// JSON parses a JSON object and flattens nested keys with dots.
// Numbers keep their textual representation.
func JSON(data []byte) (map[string]string, error) {
	var values map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&values); err != nil {
		return nil, fmt.Errorf("unmarshal json: %w", err)
	}

	return maps.Flatten(values, delimiter), nil
}

// Dotenv parses a .env document.
func Dotenv(data []byte) (map[string]string, error) {
	values, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal dotenv: %w", err)
	}

	return values, nil
}

const delimiter = "."

// ErrUnsupported is returned for file extensions without a known format.
var ErrUnsupported = errors.New("unsupported format")

//nolint:gochecknoglobals
var unmarshals = map[string]Unmarshal{
	".properties": Properties,
	".yaml":       YAML,
	".yml":        YAML,
	".toml":       TOML,
	".json":       JSON,
	".env":        Dotenv,
}
