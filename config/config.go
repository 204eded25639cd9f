package config

import (
	"reflect"
	"strings"
	"sync"

	"go-chidb/pkg/pager"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type AppConfig struct {
	StorageConfig *StorageConfig `json:"storage" validate:"required"`
	LogConfig     *LogConfig     `json:"log" validate:"required"`
}

func New() *AppConfig {
	return &AppConfig{
		StorageConfig: NewStorageConfig(),
		LogConfig:     NewLogConfig(),
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		// report fields by their json name
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks every field against its validate tag and the page size
// against the pager limits.
func (c *AppConfig) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if err := pager.ValidatePageSize(c.StorageConfig.PageSize); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}
