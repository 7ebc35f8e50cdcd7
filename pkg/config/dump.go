package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/fixtree/pkg/errors"
)

// Dump renders the configuration as TOML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return data, nil
}
