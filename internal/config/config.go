package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// ListeningPortKey is the port where the HTTP interface will listen on
	ListeningPortKey = "LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of
	// the daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// WalletAddrKey is the base URL of the wallet/mining service the daemon
	// submits spends to, ie. http://localhost:3000
	WalletAddrKey = "WALLET_ADDR"
	// PollIntervalKey is the polling cadence in milliseconds for the mempool
	// status of the tracked transaction
	PollIntervalKey = "POLL_INTERVAL"
	// PollMaxAttemptsKey caps the number of poll attempts before giving up on
	// a tracked transaction. 0 disables the cap and polls until a terminal
	// outcome.
	PollMaxAttemptsKey = "POLL_MAX_ATTEMPTS"
	// PollRequestsPerSecondKey is the rate limit applied to wallet service
	// poll requests
	PollRequestsPerSecondKey = "POLL_REQUESTS_PER_SECOND"
	// EnableProfilerKey enables profiler that can be used to investigate
	// performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval for printing basic daemon statistics
	StatsIntervalKey = "STATS_INTERVAL"
	// NoPersistenceKey is used to start the daemon with an in-memory ledger
	// instead of the on-disk one. Nothing survives a restart.
	NoPersistenceKey = "NO_PERSISTENCE"

	DbLocation       = "db"
	ProfilerLocation = "stats"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("talesd", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("TALES")
	vip.AutomaticEnv()

	vip.SetDefault(ListeningPortKey, 9000)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(WalletAddrKey, "http://localhost:3000")
	vip.SetDefault(PollIntervalKey, 2000)
	vip.SetDefault(PollMaxAttemptsKey, 0)
	vip.SetDefault(PollRequestsPerSecondKey, 5)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)
	vip.SetDefault(NoPersistenceKey, false)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	walletAddr := GetString(WalletAddrKey)
	if u, err := url.Parse(walletAddr); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be a valid http(s) URL", WalletAddrKey)
	}

	if GetInt(PollIntervalKey) <= 0 {
		return fmt.Errorf(
			"%s must be a positive number of milliseconds", PollIntervalKey,
		)
	}

	if GetInt(PollMaxAttemptsKey) < 0 {
		return fmt.Errorf("%s must be zero or positive", PollMaxAttemptsKey)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if !GetBool(NoPersistenceKey) {
		if err := makeDirectoryIfNotExists(
			filepath.Join(datadir, DbLocation),
		); err != nil {
			return err
		}
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(
			filepath.Join(datadir, ProfilerLocation),
		); err != nil {
			return err
		}
	}

	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
