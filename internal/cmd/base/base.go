// Package base carries the dependencies shared by every CLI command.
package base

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded by all commands.
type Command struct {
	// Log is the root logger.
	Log hclog.Logger

	// UI is the terminal UI.
	UI cli.Ui
}
