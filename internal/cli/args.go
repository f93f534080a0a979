package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type arg struct {
	cliShort, cfgFileEnvVar, description, defaultString string
	isBool, isInt, defaultIfBool, persistent            bool
	defaultIfInt                                        int
}

var rootNameToArg = map[string]arg{
	"config": {
		cliShort:      "",
		cfgFileEnvVar: "config",
		description:   `Config file path. Defaults to $XDG_CONFIG_HOME/listmenu/config.toml`,
		persistent:    true,
	},
	"clipboard": {
		cliShort:      "",
		cfgFileEnvVar: "clipboard",
		description:   `If present, also copy the selected element to the clipboard`,
		isBool:        true,
	},
	"cursor": {
		cliShort:      "c",
		cfgFileEnvVar: "cursor",
		description:   `Index of the initially highlighted element. Out of range values wrap or clamp`,
		isInt:         true,
	},
	"file": {
		cliShort:      "f",
		cfgFileEnvVar: "file",
		description:   `Read elements from this file, one per line. "-" reads stdin`,
	},
	"frontend": {
		cliShort:      "",
		cfgFileEnvVar: "frontend",
		description:   `Drawing frontend: "cell" or "tea". Overrides the config file`,
	},
	"hidden": {
		cliShort:      "",
		cfgFileEnvVar: "hidden",
		description:   `With --walk, also list dot files and dot directories`,
		isBool:        true,
	},
	"header": {
		cliShort:      "H",
		cfgFileEnvVar: "header",
		description:   `Text of a header row drawn above the list`,
	},
	"log-file": {
		cliShort:      "",
		cfgFileEnvVar: "log-file",
		description:   `Write diagnostics to this file`,
		persistent:    true,
	},
	"log-level": {
		cliShort:      "",
		cfgFileEnvVar: "log-level",
		description:   `Diagnostics level: debug, info, warn or error`,
		persistent:    true,
	},
	"walk": {
		cliShort:      "",
		cfgFileEnvVar: "walk",
		description:   `List the files under this directory as elements`,
	},
	"walk-depth": {
		cliShort:      "",
		cfgFileEnvVar: "walk-depth",
		description:   `How many directory levels --walk descends`,
		isInt:         true,
		defaultIfInt:  5,
	},
	"wrap": {
		cliShort:      "w",
		cfgFileEnvVar: "wrap",
		description:   `Wrap around at either end of the list. Use --wrap=false to stop at the ends`,
		isBool:        true,
		defaultIfBool: true,
	},
}

func addFlags(cmd *cobra.Command) {
	for name, c := range rootNameToArg {
		flags := cmd.Flags()
		if c.persistent {
			flags = cmd.PersistentFlags()
		}
		if c.isBool {
			flags.BoolP(name, c.cliShort, c.defaultIfBool, c.description)
		} else if c.isInt {
			flags.IntP(name, c.cliShort, c.defaultIfInt, c.description)
		} else {
			flags.StringP(name, c.cliShort, c.defaultString, c.description)
		}
	}
}

// bindFlags applies LISTMENU_* environment values to flags not given on the
// command line
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		c, ok := rootNameToArg[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if !f.Changed && v.IsSet(c.cfgFileEnvVar) {
			val := v.Get(c.cfgFileEnvVar)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				bindErr = fmt.Errorf("error setting flag %s: %w", f.Name, err)
			}
		}
	})
	return bindErr
}
