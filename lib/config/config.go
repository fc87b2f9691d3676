package config

import (
	"errors"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/qcdb/go-qcdb/lib/util"
	"github.com/samber/oops"
	"github.com/spf13/viper"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const GOQCDB_BASE_DIR = ".go-qcdb"

// ErrConfigNotFound is returned when an explicitly named config file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// InitConfig loads defaults and the config file into the global viper instance.
func InitConfig() error {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(BuildDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	if err := handleConfigFile(); err != nil {
		return err
	}
	return Validate(CurrentConfig())
}

func setDefaults() {
	defaults := Defaults()
	viper.SetDefault("base_dir", defaults.BaseDir)
	viper.SetDefault("verbose", defaults.Verbose)
	viper.SetDefault("strict", defaults.Strict)
}

// CurrentConfig reads the application settings back from viper.
func CurrentConfig() ConfigDefaults {
	return ConfigDefaults{
		BaseDir: viper.GetString("base_dir"),
		Verbose: viper.GetInt("verbose"),
		Strict:  viper.GetBool("strict"),
	}
}

func handleConfigFile() error {
	if CfgFile != "" && !util.CheckFileExists(CfgFile) {
		return oops.Wrapf(ErrConfigNotFound, "config file %s", CfgFile)
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.WithFields(logger.Fields{
				"at":   "config.handleConfigFile",
				"path": BuildDirPath(),
			}).Debug("no_config_file_using_defaults")
			return nil
		}
		return oops.Wrapf(err, "error reading config file")
	}
	log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	return nil
}

// BuildDirPath returns the default configuration directory.
func BuildDirPath() string {
	return filepath.Join(util.UserHome(), GOQCDB_BASE_DIR)
}
