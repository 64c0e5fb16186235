package opts

import (
	"context"
	"os"

	"github.com/walteh/matchrc/pkg/config"
	"github.com/walteh/matchrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
	UserLogger *log.Logger
}

// LoadConfig loads the file named by --config. A missing file is only an
// error when the flag was set to something other than the default; the
// default path simply falls back to the built-in defaults.
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, o.ConfigFile)
	if err == nil {
		return cfg, nil
	}

	if o.ConfigFile == config.DefaultFile && errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}

	return nil, errors.Errorf("loading config: %w", err)
}
