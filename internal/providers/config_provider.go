package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"mintd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "MINTD_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "MINTD_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "MINTD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "MINTD_CACHE_SIZE")
	viper.BindEnv("journal.path", "MINTD_JOURNAL_PATH")
	viper.BindEnv("sale.symbol", "MINTD_SALE_SYMBOL")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "WalletMintDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
