package config

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	scenarioNamePattern = regexp.MustCompile(`^ai-factory-su-(workload1-dp-heavy|mixed_scenario)$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("routing_mode", func(fl validator.FieldLevel) bool {
			switch NormalizeRoutingMode(fl.Field().String()) {
			case RoutingModeStaticHash, RoutingModeAdaptive:
				return true
			default:
				return false
			}
		})

		_ = v.RegisterValidation("scenario_name", func(fl validator.FieldLevel) bool {
			return scenarioNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
