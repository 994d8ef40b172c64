package cli

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// config is the optional TOML file passed with --config. Flags given on the
// command line take precedence over file values.
type config struct {
	Title    string   `toml:"title"`
	Type     string   `toml:"type"`
	Format   string   `toml:"format"`
	Indent   string   `toml:"indent"`
	MaxWidth int      `toml:"max_width"`
	Redact   []string `toml:"redact"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Newf("load config %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}
