package di

import (
	"fmt"
	"sort"

	"github.com/kbukum/aliasdi/errors"
	"github.com/kbukum/aliasdi/logger"
)

// ConfigValidator turns a raw configuration map into normalized entries.
type ConfigValidator struct {
	log *logger.Logger
}

// NewConfigValidator creates a validator that reports skipped entries to log.
func NewConfigValidator(log *logger.Logger) *ConfigValidator {
	if log == nil {
		log = logger.Nop()
	}
	return &ConfigValidator{log: log}
}

// ParseConfig validates raw with a validator that logs through the "di" logger.
func ParseConfig(raw any) (map[string]AliasEntry, error) {
	return NewConfigValidator(logger.Get("di")).Validate(raw)
}

// Validate checks the shape of raw and normalizes every alias. Aliases are
// visited in sorted order, so the first reported error is deterministic.
// Entries that are neither a string nor an object are skipped with a warning.
func (v *ConfigValidator) Validate(raw any) (map[string]AliasEntry, error) {
	cfg, ok := asObject(raw)
	if !ok {
		return nil, errors.ConfigValidation("config")
	}

	aliases := make([]string, 0, len(cfg))
	for alias := range cfg {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	entries := make(map[string]AliasEntry, len(cfg))
	for _, alias := range aliases {
		value := cfg[alias]
		if isFalsy(value) {
			return nil, errors.ConfigValidation(alias)
		}

		switch val := value.(type) {
		case string:
			entries[alias] = AliasEntry{Module: val}
		case AliasEntry:
			entry, err := normalizeEntry(alias, val)
			if err != nil {
				return nil, err
			}
			entries[alias] = entry
		case *AliasEntry:
			entry, err := normalizeEntry(alias, *val)
			if err != nil {
				return nil, err
			}
			entries[alias] = entry
		default:
			obj, ok := asObject(value)
			if !ok {
				v.log.Warn("Skipping alias with unsupported definition", logger.Fields(
					logger.FieldAlias, alias,
					"type", fmt.Sprintf("%T", value),
				))
				continue
			}
			entry, err := parseObject(alias, obj)
			if err != nil {
				return nil, err
			}
			entries[alias] = entry
		}
	}

	return entries, nil
}

func parseObject(alias string, obj map[string]any) (AliasEntry, error) {
	mod, ok := obj["module"].(string)
	if !ok || mod == "" {
		return AliasEntry{}, errors.ConfigValidation(alias + ".module")
	}
	entry := AliasEntry{Module: mod}

	if raw, present := obj["className"]; present {
		className, ok := raw.(string)
		if !ok {
			return AliasEntry{}, errors.ConfigValidation(alias + ".className")
		}
		entry.ClassName = className
	}

	if raw, present := obj["instantiate"]; present {
		instantiate, ok := raw.(bool)
		if !ok {
			return AliasEntry{}, errors.ConfigValidation(alias + ".instantiate")
		}
		entry.Instantiate = instantiate
	}

	if params, present := obj["params"]; present && entry.Instantiate {
		entry.Params = deepCopy(params)
		entry.HasParams = true
	}

	return entry, nil
}

func normalizeEntry(alias string, e AliasEntry) (AliasEntry, error) {
	if e.Module == "" {
		return AliasEntry{}, errors.ConfigValidation(alias + ".module")
	}
	out := AliasEntry{Module: e.Module, ClassName: e.ClassName, Instantiate: e.Instantiate}
	if e.Instantiate && (e.HasParams || e.Params != nil) {
		out.Params = deepCopy(e.Params)
		out.HasParams = true
	}
	return out, nil
}

// asObject accepts the map shapes produced by Go literals and by YAML/JSON
// decoders. Maps with non-string keys are not objects.
func asObject(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		if m == nil {
			return nil, false
		}
		return m, true
	case map[string]string:
		if m == nil {
			return nil, false
		}
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	case map[any]any:
		if m == nil {
			return nil, false
		}
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = v
		}
		return out, true
	}
	return nil, false
}
