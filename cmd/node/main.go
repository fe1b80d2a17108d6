package main

import (
	"flag"
	"io/ioutil"
	"math/big"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/mattn/go-sqlite3"
	"github.com/meverselabs/dmcexchange/cmd/app"
	"github.com/meverselabs/dmcexchange/cmd/closer"
	"github.com/meverselabs/dmcexchange/cmd/config"
	"github.com/meverselabs/dmcexchange/common/key"
	"github.com/meverselabs/dmcexchange/common/rlog"
	"github.com/meverselabs/dmcexchange/core/backend"
	_ "github.com/meverselabs/dmcexchange/core/backend/leveldb_driver"
	_ "github.com/meverselabs/dmcexchange/core/backend/memory_driver"
	"github.com/meverselabs/dmcexchange/core/chain"
	"github.com/meverselabs/dmcexchange/service/apiserver"
	"github.com/meverselabs/dmcexchange/service/eventindex"
	"github.com/meverselabs/dmcexchange/service/eventsql"
	"github.com/meverselabs/dmcexchange/service/ledger"
)

// Config is a configuration for the cmd
type Config struct {
	ChainID      uint64 `toml:"chain_id" yaml:"chain_id"`
	StoreRoot    string `toml:"store_root" yaml:"store_root"`
	Driver       string `toml:"driver" yaml:"driver"`
	BindAddress  string `toml:"bind_address" yaml:"bind_address"`
	Workers      int    `toml:"workers" yaml:"workers"`
	AdminKeyHex  string `toml:"admin_key_hex" yaml:"admin_key_hex"`
	AdminKeyFile string `toml:"admin_key_file" yaml:"admin_key_file"`
	IndexEvents  bool   `toml:"index_events" yaml:"index_events"`
	SQLDriver    string `toml:"sql_driver" yaml:"sql_driver"`
	SQLDSN       string `toml:"sql_dsn" yaml:"sql_dsn"`
	LogPath      string `toml:"log_path" yaml:"log_path"`
	LogHost      string `toml:"log_host" yaml:"log_host"`
	LogName      string `toml:"log_name" yaml:"log_name"`
}

func (cfg *Config) applyEnv() {
	cfg.AdminKeyHex = config.Env("DMCX_ADMIN_KEY", cfg.AdminKeyHex)
	cfg.BindAddress = config.Env("DMCX_BIND_ADDRESS", cfg.BindAddress)
	cfg.SQLDSN = config.Env("DMCX_SQL_DSN", cfg.SQLDSN)
	cfg.LogHost = config.Env("DMCX_LOG_HOST", cfg.LogHost)
	if len(cfg.StoreRoot) == 0 {
		cfg.StoreRoot = "./ndata"
	}
	if len(cfg.Driver) == 0 {
		cfg.Driver = "leveldb"
	}
	if len(cfg.BindAddress) == 0 {
		cfg.BindAddress = ":48000"
	}
	if cfg.ChainID == 0 {
		cfg.ChainID = 0xD3C
	}
}

func main() {
	cfgPath := flag.String("cfg", "./config.toml", "config file path (.toml, .yaml)")
	envPath := flag.String("env", "./.env", "dotenv file path")
	flag.Parse()

	if err := config.LoadEnv(*envPath); err != nil {
		panic(err)
	}
	var cfg Config
	if err := config.LoadFile(*cfgPath, &cfg); err != nil {
		panic(err)
	}
	cfg.applyEnv()
	ChainID := new(big.Int).SetUint64(cfg.ChainID)

	cm := closer.NewManager()
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		<-sigc
		cm.CloseAll()
	}()
	defer cm.CloseAll()

	if len(cfg.LogHost) > 0 {
		lw, err := rlog.Enablelogger(filepath.Join(cfg.StoreRoot, "_rlog"), cfg.LogHost, cfg.LogName)
		if err != nil {
			panic(err)
		}
		cm.Add("rlog", closer.Func(lw.Close))
	}

	admin, err := loadAdminKey(&cfg)
	if err != nil {
		panic(err)
	}
	db, err := backend.Create(cfg.Driver, filepath.Join(cfg.StoreRoot, "chain"))
	if err != nil {
		panic(err)
	}
	st, err := chain.NewStore(db, ChainID)
	if err != nil {
		panic(err)
	}
	cn := chain.NewChain(st)
	cm.Add("chain", closer.Func(cn.Close))

	genesis, dep, err := app.Genesis(ChainID, admin.Address())
	if err != nil {
		panic(err)
	}
	if err := cn.Init(genesis); err != nil {
		panic(err)
	}
	rlog.Println("DMC", dep.DMC.String(), "GWT", dep.GWT.String(), "Exchange", dep.Exchange.String())

	api := apiserver.NewAPIServer(cfg.Workers)
	lg := ledger.NewLedger(cn)
	if err := lg.SetupAPI(api); err != nil {
		panic(err)
	}
	if cfg.IndexEvents {
		ei, err := eventindex.NewEventIndex(filepath.Join(cfg.StoreRoot, "_eventindex"), st)
		if err != nil {
			panic(err)
		}
		cm.Add("eventindex", ei)
		cn.MustAddService(ei)
		if err := ei.SetupAPI(api); err != nil {
			panic(err)
		}
	}
	if len(cfg.SQLDSN) > 0 {
		driver := cfg.SQLDriver
		if len(driver) == 0 {
			driver = "mysql"
		}
		es, err := eventsql.NewEventSQL(driver, cfg.SQLDSN)
		if err != nil {
			panic(err)
		}
		cm.Add("eventsql", es)
		if err := es.Sync(st); err != nil {
			panic(err)
		}
		cn.MustAddService(es)
		if err := es.SetupAPI(api); err != nil {
			panic(err)
		}
	}
	cn.MustAddService(api)
	cm.Add("api", api)

	go func() {
		if err := api.Run(cfg.BindAddress); err != nil {
			rlog.Println("api", err)
			cm.CloseAll()
		}
	}()
	cm.Wait()
}

// loadAdminKey reads the admin key from the hex, the encrypted key file or ./admin.key
// a new key is generated into ./admin.key when none is given
func loadAdminKey(cfg *Config) (key.Key, error) {
	if len(cfg.AdminKeyHex) > 0 {
		return key.NewMemoryKeyFromString(cfg.AdminKeyHex)
	}
	if len(cfg.AdminKeyFile) > 0 {
		bs, err := ioutil.ReadFile(cfg.AdminKeyFile)
		if err != nil {
			return nil, err
		}
		return key.DecryptKey(bs, []byte(os.Getenv("DMCX_KEY_PASSPHRASE")))
	}
	path := filepath.Join(cfg.StoreRoot, "admin.key")
	if bs, err := ioutil.ReadFile(path); err == nil {
		return key.NewMemoryKeyFromBytes(bs)
	}
	k, err := key.NewMemoryKey()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.StoreRoot, 0700); err != nil {
		return nil, err
	}
	if err := ioutil.WriteFile(path, k.Bytes(), 0600); err != nil {
		return nil, err
	}
	return k, nil
}
