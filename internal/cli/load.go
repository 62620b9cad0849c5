package cli

import (
	"fmt"
	"strings"

	"github.com/ppiankov/acevents/internal/model"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Keys omitted from the YAML defaults that must still be visible to the environment
var optionalKeys = []string{
	"segmenter.url",
	"segmenter.http_proxy",
	"segmenter.https_proxy",
	"segmenter.no_proxy",
	"sampling.seed",
}

// loadConfig resolves the configuration from defaults, the config file, the
// environment and bound flags, in increasing priority
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := setDefaults(v, cfg); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key of cfg with v so that AutomaticEnv can see it
func setDefaults(v *viper.Viper, cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("unmarshal defaults: %w", err)
	}

	setTree(v, nil, tree)

	for _, key := range optionalKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

func setTree(v *viper.Viper, prefix []string, tree map[string]any) {
	for key, value := range tree {
		path := append(append([]string(nil), prefix...), key)
		if sub, ok := value.(map[string]any); ok {
			setTree(v, path, sub)
			continue
		}
		v.SetDefault(strings.Join(path, "."), value)
	}
}
