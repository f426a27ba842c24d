package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// yamlishFieldName converts a validator struct namespace (e.g.
// "Config.Topology.AIFactorySU.Leaves") into a lowercase, dotted path
// ("config.topology.aifactorysu.leaves") for error messages. The segments
// are the lowercased Go field names, not the YAML keys: ServersPerLeaf
// becomes "serversperleaf", not "servers_per_leaf".
func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
