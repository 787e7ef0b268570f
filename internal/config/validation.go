// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"

	"github.com/lestrrat-go/strftime"

	"github.com/ManuGH/xmltv-new/internal/validate"
)

// Validate validates an AppConfig using the centralized validation package
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.ExistingDirectory("data_dir", cfg.DataDir)
	v.OneOf("log.level", cfg.LogLevel, validate.LogLevels)

	if cfg.Location == nil {
		v.AddError("timezone", "time zone not loaded", cfg.Timezone)
	}

	for i, id := range cfg.ChannelIDs {
		v.NotEmpty(fmt.Sprintf("channels[%d].id", i), id)
	}
	v.Unique("channels", cfg.ChannelIDs)

	if cfg.Table.TimeFormat != "" {
		v.Custom("table.time_format", cfg.Table.TimeFormat, func(val interface{}) error {
			_, err := strftime.New(val.(string))
			return err
		})
	}

	if cfg.Feed.Link != "" {
		v.URL("feed.link", cfg.Feed.Link, []string{"http", "https"})
	}

	return v.Err()
}
