package cli

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// loadConfig merges, in increasing precedence: the optional .plantctl.yaml
// config file, PLANTCTL_* environment variables, and command line flags.
func loadConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".plantctl")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PLANTCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// Users do not have to carry a config file.
			return nil
		}
		return errors.Wrapf(err, "reading config file %s", viper.ConfigFileUsed())
	}

	return nil
}
