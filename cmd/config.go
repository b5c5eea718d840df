package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"decalls-stats/decalls"
	"decalls-stats/stats"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultRpcEndpoint   = "https://api.mainnet-beta.solana.com"
	defaultRetryInterval = 500 * time.Millisecond
)

// Config is resolved from flags, then environment (including .env), then defaults.
type Config struct {
	RPCNode           string
	ProgramID         string
	Snapshot          string
	BatchSize         int
	FetchConcurrency  int
	RetryAttempts     uint
	Commitment        string
	GamesLimit        uint64
	BootstrapAccounts int
	LogLevel          string
}

func registerConfigFlags(flags *pflag.FlagSet) {
	flags.String("rpc-node", defaultRpcEndpoint, "Solana RPC endpoint (env RPC_NODE)")
	flags.String("program-id", "", "DeCalls program address (env PROGRAM_ID)")
	flags.String("snapshot", "", "read records from a snapshot file instead of the RPC node (env SNAPSHOT)")
	flags.Int("batch-size", decalls.DefaultBatchSize, "max accounts per getMultipleAccounts call (env BATCH_SIZE)")
	flags.Int("fetch-concurrency", 1, "batch fetch chunks in flight at once (env FETCH_CONCURRENCY)")
	flags.Uint("retry-attempts", 3, "attempts per RPC call (env RETRY_ATTEMPTS)")
	flags.String("commitment", string(rpc.CommitmentConfirmed), "RPC commitment level (env COMMITMENT)")
	flags.Uint64("games-limit", stats.DefaultGamesLimit, "highest games value shown in the histogram (env GAMES_LIMIT)")
	flags.Int("bootstrap-accounts", stats.DefaultBootstrapAccounts, "earliest accounts left out of the growth series (env BOOTSTRAP_ACCOUNTS)")
	flags.String("log-level", "info", "log level: debug, info, warn, error (env LOG_LEVEL)")
}

// loadConfig reads the configuration for cmd. The boolean reports whether a
// .env file was found.
func loadConfig(cmd *cobra.Command) (*Config, bool, error) {
	envLoaded := godotenv.Load() == nil

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, envLoaded, fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg := &Config{
		RPCNode:           v.GetString("rpc-node"),
		ProgramID:         v.GetString("program-id"),
		Snapshot:          v.GetString("snapshot"),
		BatchSize:         v.GetInt("batch-size"),
		FetchConcurrency:  v.GetInt("fetch-concurrency"),
		RetryAttempts:     v.GetUint("retry-attempts"),
		Commitment:        v.GetString("commitment"),
		GamesLimit:        v.GetUint64("games-limit"),
		BootstrapAccounts: v.GetInt("bootstrap-accounts"),
		LogLevel:          v.GetString("log-level"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, envLoaded, err
	}
	return cfg, envLoaded, nil
}

func (cfg *Config) Validate() error {
	if cfg.RPCNode == "" {
		return errors.New("rpc-node must be set")
	}
	if cfg.BatchSize <= 0 {
		return errors.New("batch-size must be positive")
	}
	if cfg.FetchConcurrency <= 0 {
		return errors.New("fetch-concurrency must be positive")
	}
	if cfg.RetryAttempts == 0 {
		return errors.New("retry-attempts must be positive")
	}
	if cfg.BootstrapAccounts < 0 {
		return errors.New("bootstrap-accounts must not be negative")
	}
	switch rpc.CommitmentType(cfg.Commitment) {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("unknown commitment %q", cfg.Commitment)
	}
	return nil
}

// ClientConfig builds the RPC client settings. The program id is only needed
// for live reads, so it is checked here rather than in Validate.
func (cfg *Config) ClientConfig() (decalls.Config, error) {
	if cfg.ProgramID == "" {
		return decalls.Config{}, errors.New("program-id must be set (flag --program-id or env PROGRAM_ID)")
	}
	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		return decalls.Config{}, fmt.Errorf("invalid program-id %q: %w", cfg.ProgramID, err)
	}
	return decalls.Config{
		RPCEndpoint:      cfg.RPCNode,
		ProgramID:        programID,
		Commitment:       rpc.CommitmentType(cfg.Commitment),
		BatchSize:        cfg.BatchSize,
		FetchConcurrency: cfg.FetchConcurrency,
		RetryAttempts:    cfg.RetryAttempts,
		RetryInterval:    defaultRetryInterval,
	}, nil
}
