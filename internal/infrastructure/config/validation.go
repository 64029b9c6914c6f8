package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bnema/tabmatch/internal/domain/url"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

func init() {
	structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateStruct(config)...)
	validationErrors = append(validationErrors, validateMatching(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

// validateStruct runs the validate tags. Field names use the mapstructure
// keys so messages match the TOML file.
func validateStruct(config *Config) []string {
	err := structValidator.Struct(config)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", key, strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be non-negative", key))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q validation", key, fe.Tag()))
		}
	}
	return msgs
}

func validateMatching(config *Config) []string {
	if _, err := url.ParseStrictness(config.Matching.Strictness); err != nil {
		names := make([]string, 0, len(url.Strictnesses()))
		for _, s := range url.Strictnesses() {
			names = append(names, string(s))
		}
		return []string{fmt.Sprintf("matching.strictness must be one of: %s", strings.Join(names, ", "))}
	}
	return nil
}

func validateLogging(config *Config) []string {
	if config.Logging.EnableFileLog && config.Logging.LogDir == "" {
		return []string{"logging.log_dir is required when logging.enable_file_log is set"}
	}
	return nil
}
