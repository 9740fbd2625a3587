package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/gookit/slog"
	"github.com/spf13/viper"
)

const DefaultConfigFilePath = "config.yaml"

// Load reads the node configuration from defaults, an optional config file
// and the environment, in that order of precedence.
type Load struct {
	cfg            ServerConfig
	envPrefix      string
	configFilePath string
	viper          *viper.Viper
}

func NewLoader(envPrefix string) *Load {
	return &Load{
		cfg:            DefaultConfig(),
		envPrefix:      envPrefix,
		configFilePath: DefaultConfigFilePath,
		viper:          viper.New(),
	}
}

func (l *Load) SetConfigFilePath(path string) error {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext != "yaml" && ext != "yml" && ext != "json" {
		return fmt.Errorf("unsupported config file extension: %s", ext)
	}
	l.configFilePath = path
	return nil
}

func (l *Load) Load() (ServerConfig, error) {
	l.setViperDefaults()
	l.prepareViper()

	if err := l.loadFromFile(); err != nil {
		return l.cfg, err
	}
	if err := l.viperToCfg(); err != nil {
		return l.cfg, err
	}

	slog.Info("Config loaded successfully")
	return l.cfg, nil
}

func (l *Load) setViperDefaults() {
	defaultsMap := map[string]interface{}{}
	if err := mapstructure.Decode(DefaultConfig(), &defaultsMap); err != nil {
		slog.Errorf("error while setting defaults: %v", err)
		return
	}
	for k, v := range defaultsMap {
		l.viper.SetDefault(k, v)
	}
}

func (l *Load) prepareViper() {
	l.viper.SetEnvPrefix(l.envPrefix)
	l.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.viper.AutomaticEnv()
}

func (l *Load) loadFromFile() error {
	if _, err := os.Stat(l.configFilePath); os.IsNotExist(err) {
		slog.Warnf("Config file not found at %s, using defaults", l.configFilePath)
		return nil
	}

	l.viper.SetConfigFile(l.configFilePath)
	if err := l.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	slog.Infof("Loaded config from file: %s", l.configFilePath)
	return nil
}

func (l *Load) viperToCfg() error {
	if err := l.viper.Unmarshal(&l.cfg); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}
	l.applyDefaults()
	return nil
}
