package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	simerrors "github.com/alonzeltser/fabricsim/pkg/errors"
)

// ValidateConfig performs structural and cross-field validation on an entire configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return simerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	su := cfg.Topology.AIFactorySU
	if su.Leaves*su.ServersPerLeaf <= 0 {
		return simerrors.NewValidationError("topology.ai_factory_su", "leaves and servers_per_leaf must produce at least one host", nil)
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return simerrors.NewValidationError(field, msg, err)
	}

	return simerrors.NewValidationError("config", err.Error(), err)
}
