package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"cefr-training-go/internal/config"
	"cefr-training-go/internal/logger"
)

type commandContext struct {
	dbFlag string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

// ensureConfig loads the environment once and applies the --db override.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.configErr = err
			return
		}
		if db := strings.TrimSpace(c.dbFlag); db != "" {
			cfg.DatabasePath = db
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger writes to the command's stderr so tables on stdout stay clean.
func (c *commandContext) logger(cmd *cobra.Command) *logger.Logger {
	return logger.NewWithOutput(cmd.ErrOrStderr())
}
