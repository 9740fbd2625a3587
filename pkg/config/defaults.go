package config

func (l *Load) applyDefaults() {
	defaultCfg := DefaultConfig()

	if l.cfg.Name == "" {
		l.cfg.Name = defaultCfg.Name
	}
	if l.cfg.Address == "" {
		l.cfg.Address = defaultCfg.Address
	}
	if l.cfg.Port == 0 {
		l.cfg.Port = defaultCfg.Port
	}
	if l.cfg.LedgerConfig.GenesisFile == "" {
		l.cfg.LedgerConfig.GenesisFile = defaultCfg.LedgerConfig.GenesisFile
	}
	if l.cfg.LedgerConfig.MempoolCapacity == 0 {
		l.cfg.LedgerConfig.MempoolCapacity = defaultCfg.LedgerConfig.MempoolCapacity
	}
	if l.cfg.LoggerConfig.Level == "" {
		l.cfg.LoggerConfig.Level = defaultCfg.LoggerConfig.Level
	}
	if l.cfg.LoggerConfig.Format == "" {
		l.cfg.LoggerConfig.Format = defaultCfg.LoggerConfig.Format
	}
}
