package processing

import (
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Config steers a batch run.
type Config struct {
	// Number of windows decomposed concurrently
	Workers int `default:"4" validate:"min=1,max=1024"`
	// Windows covering more cells than this are rejected instead of decomposed
	MaxCells int `default:"1000000" validate:"min=1"`
	// Reject out-of-domain and inverted windows instead of decomposing them as given
	Checked bool
}

// NewConfig returns a Config with the defaults applied.
func NewConfig() Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Complete fills the zero fields of cfg with the defaults and validates the result.
func (cfg *Config) Complete() error {
	if err := defaults.Set(cfg); err != nil {
		return err
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(cfg)
}
