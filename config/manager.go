package config

import (
	"gopkg.in/yaml.v3"
	"os"
	"reflect"
	"strconv"
	"strings"
)

const EnvPrefix = "UE_AGENT"

type Manager struct {
	configStore ConfigStore
	Config      Config
}

func NewManager(cs ConfigStore) *Manager {
	configuration := cs.ReadDefaults()

	userConfig, err := cs.Read()
	if err == nil {
		configuration = replaceByConfigFile(configuration, userConfig)
	}

	return &Manager{configStore: cs, Config: boundIterations(configuration)}
}

func (c *Manager) WithEnvironment() *Manager {
	c.Config = replaceByEnvironment(c.Config)
	return c
}

// Save persists the current configuration through the underlying store.
func (c *Manager) Save() error {
	return c.configStore.Write(c.Config)
}

// ShowConfig serializes the current configuration to a YAML string.
// It returns the serialized string or an error if the serialization fails.
func (c *Manager) ShowConfig() (string, error) {
	data, err := yaml.Marshal(c.Config)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func replaceByConfigFile(defaultConfig, userConfig Config) Config {
	mergeValues(reflect.ValueOf(&defaultConfig).Elem(), reflect.ValueOf(userConfig))
	return defaultConfig
}

func mergeValues(dst, src reflect.Value) {
	for i := 0; i < dst.NumField(); i++ {
		defaultField := dst.Field(i)
		userField := src.Field(i)

		switch defaultField.Kind() {
		case reflect.Struct:
			mergeValues(defaultField, userField)
		case reflect.Slice:
			if userField.Len() > 0 {
				defaultField.Set(userField)
			}
		case reflect.String:
			if userStr := userField.String(); userStr != "" {
				defaultField.SetString(userStr)
			}
		case reflect.Int:
			if userInt := int(userField.Int()); userInt != 0 {
				defaultField.SetInt(int64(userInt))
			}
		case reflect.Bool:
			if userField.Bool() {
				defaultField.SetBool(true)
			}
		case reflect.Float64:
			if userFloat := userField.Float(); userFloat != 0.0 {
				defaultField.SetFloat(userFloat)
			}
		}
	}
}

func replaceByEnvironment(configuration Config) Config {
	applyEnvironment(reflect.ValueOf(&configuration).Elem(), EnvPrefix+"_")
	return boundIterations(configuration)
}

// boundIterations restores the default cap when a source set it below 1.
func boundIterations(configuration Config) Config {
	if configuration.Agent.MaxIterations < 1 {
		configuration.Agent.MaxIterations = agentMaxIterations
	}
	return configuration
}

// applyEnvironment maps UE_AGENT_<TAG> onto top-level fields and
// UE_AGENT_AGENT_<TAG> onto the nested agent section.
func applyEnvironment(v reflect.Value, prefix string) {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		field := v.Field(i)
		key := prefix + strings.ToUpper(tag)

		if field.Kind() == reflect.Struct {
			applyEnvironment(field, key+"_")
			continue
		}

		value := os.Getenv(key)
		if value == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Int:
			intValue, _ := strconv.Atoi(value)
			field.SetInt(int64(intValue))
		case reflect.Bool:
			boolValue, _ := strconv.ParseBool(value)
			field.SetBool(boolValue)
		case reflect.Float64:
			floatValue, _ := strconv.ParseFloat(value, 64)
			field.SetFloat(floatValue)
		case reflect.Slice:
			var items []string
			for _, item := range strings.Split(value, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			field.Set(reflect.ValueOf(items))
		}
	}
}
