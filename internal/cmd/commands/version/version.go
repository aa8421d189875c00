package version

import (
	"github.com/Amarverma111/graph/internal/cmd/base"
	"github.com/Amarverma111/graph/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return "Usage: graphgw version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
