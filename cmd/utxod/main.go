package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/config"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger/storage"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/pool"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/notify"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/server"
	"github.com/gookit/slog"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigFilePath, "path to the node config file")
	flag.Parse()

	loader := config.NewLoader("UTXO")
	if err := loader.SetConfigFilePath(*configPath); err != nil {
		log.Fatal(err)
	}
	cfg, err := loader.Load()
	if err != nil {
		log.Fatal(err)
	}
	setupLogger(cfg.LoggerConfig)

	store, err := openStorage(cfg.DatabaseConfig)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if path := cfg.LedgerConfig.GenesisFile; path != "" {
		if _, err := os.Stat(path); err == nil {
			outputs, err := config.LoadGenesis(path)
			if err != nil {
				log.Fatal(err)
			}
			ids, err := ledger.InitGenesis(ctx, store, outputs)
			if err != nil {
				log.Fatal(err)
			}
			slog.Infof("Genesis seeded with %d outputs", len(ids))
		} else {
			slog.Warnf("Genesis file not found at %s, starting with an empty ledger", path)
		}
	}

	standing, err := config.ParseAuthorities(cfg.LedgerConfig.Authorities)
	if err != nil {
		log.Fatal(err)
	}

	engineCfg := ledger.Engine{
		Storage: store,
		Mempool: pool.New(cfg.LedgerConfig.MempoolCapacity),
	}
	if cfg.WebhookConfig.Enabled {
		engineCfg.OnTransactionSuccess = notify.NewWebhook(cfg.WebhookConfig.URL).TransactionSuccess
	}
	eng := ledger.NewEngine(engineCfg)

	serverCfg := server.DefaultConfig
	serverCfg.AppName = cfg.Name
	serverCfg.Addr = cfg.Address
	serverCfg.Port = cfg.Port
	if cfg.AdminBearerToken != "" {
		serverCfg.AdminBearerToken = cfg.AdminBearerToken
	}
	httpAPI := server.New(
		server.WithConfig(serverCfg),
		server.WithEngine(eng),
		server.WithStandingAuthorities(standing),
	)

	slog.Infof("Ledger node listening on %s", httpAPI.SocketAddr())
	log.Fatal(httpAPI.ListenAndServe())
}

func openStorage(cfg config.DatabaseConfig) (ledger.Storage, error) {
	if cfg.Enabled {
		slog.Infof("Opening sqlite ledger store at %s", cfg.URL)
		return storage.NewSQLiteStorage(cfg.URL)
	}
	slog.Warn("Database disabled, ledger state is in memory only")
	return storage.NewMemoryStorage(), nil
}

func setupLogger(cfg config.LoggerConfig) {
	slog.SetLogLevel(slog.LevelByName(cfg.Level))
	if cfg.Format == "json" {
		slog.SetFormatter(slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
			f.PrettyPrint = cfg.PrettyPrint
		}))
	}
}
