package config

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks cfg against its struct `validate` tags, reporting a
// joined error describing every violated constraint.
func Validate(cfg *Config) error {
	return validate.Struct(cfg)
}
