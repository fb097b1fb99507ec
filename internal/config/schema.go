package config

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// GenerateSchema reflects Config into a JSON schema keyed by the YAML field names.
func GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		FieldNameTag:              "yaml",
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(time.Duration(0)) {
				return &jsonschema.Schema{
					Type:        "string",
					Pattern:     `^([0-9]+(\.[0-9]+)?(ns|us|ms|s|m|h))+$`,
					Description: "Go duration, e.g. 30s; 0 disables the timeout",
				}
			}

			return nil
		},
	}

	return reflector.Reflect(&Config{})
}

// GenerateSchemaJSON returns the indented JSON schema of Config.
func GenerateSchemaJSON() (string, error) {
	data, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// SampleYAML renders the default configuration for a starter config file.
func SampleYAML() ([]byte, error) {
	return yaml.Marshal(Default())
}
