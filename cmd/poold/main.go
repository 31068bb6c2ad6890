// main.go - Configuration-driven pool runner.
//
// poold runs the full spend-proof flow under the daemon's ambient stack:
// JSON configuration, structured logging shared with the gnark library, and
// per-operation metrics. The flow itself matches the root demonstration:
// accumulate a pool, spend a leaked commitment, then spend it again with the
// mirrored secret and record how the ledger fails to notice.
//
// Usage:
//   go run ./cmd/poold
//
// A poold.json config file is created with defaults on first run.

package main

import (
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bw6-761/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/rs/zerolog"

	"shieldpool/internal/pool"
)

const configPath = "poold.json"

func main() {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	metrics := NewMetricsCollector()
	if err := run(cfg, logger, metrics); err != nil {
		logger.Fatal().Err(err).Msg("run failed")
	}
	metrics.Report(logger)
}

func run(cfg *Config, logger zerolog.Logger, metrics *MetricsCollector) error {
	// Circuit compilation and key material, both timed.
	var ccs constraint.ConstraintSystem
	err := metrics.Time("compile", func() error {
		var err error
		ccs, err = pool.Compile()
		return err
	})
	if err != nil {
		return fmt.Errorf("circuit compilation failed: %w", err)
	}
	logger.Info().Int("constraints", ccs.GetNbConstraints()).Msg("spend circuit compiled")

	var pk groth16.ProvingKey
	var vk groth16.VerifyingKey
	err = metrics.Time("key_setup", func() error {
		var err error
		pk, vk, err = pool.SetupOrLoadKeys(ccs, cfg.ProvingKeyPath, cfg.VerifyingKeyPath)
		return err
	})
	if err != nil {
		return fmt.Errorf("key setup failed: %w", err)
	}

	leaves, leakedSecret, err := fixtures(cfg, logger)
	if err != nil {
		return fmt.Errorf("fixture setup failed: %w", err)
	}

	acc, err := pool.Build(pool.DefaultParams(), leaves)
	if err != nil {
		return fmt.Errorf("accumulator build failed: %w", err)
	}
	root := acc.Root()
	logger.Info().Int("leaves", len(leaves)).Str("root", root.String()).Msg("accumulator built")

	ledger := pool.NewLedger()

	// Round 1: the leaked secret spends its commitment.
	spend, err := spendRound(cfg, logger, metrics, acc, leakedSecret, ccs, pk, vk, ledger)
	if err != nil {
		return err
	}

	// Round 2: the mirrored secret spends the same commitment again.
	mirror := pool.MirrorSecret(leakedSecret)
	second, err := spendRound(cfg, logger, metrics, acc, mirror, ccs, pk, vk, ledger)
	if err != nil {
		return err
	}
	if spend.Nullifier == second.Nullifier {
		return fmt.Errorf("expected distinct nullifiers for the two spends")
	}

	logger.Warn().
		Str("nullifier_1", spend.Nullifier).
		Str("nullifier_2", second.Nullifier).
		Msg("same commitment spent twice under distinct nullifiers")

	if err := ledger.SaveToFile(cfg.LedgerPath); err != nil {
		return fmt.Errorf("ledger save failed: %w", err)
	}
	logger.Info().Str("path", cfg.LedgerPath).Int("spends", len(ledger.Spends)).Msg("ledger persisted")
	return nil
}

// spendRound proves, verifies and records one spend of the commitment at the
// configured leak index.
func spendRound(cfg *Config, logger zerolog.Logger, metrics *MetricsCollector, acc *pool.Accumulator, secret fr.Element, ccs constraint.ConstraintSystem, pk groth16.ProvingKey, vk groth16.VerifyingKey, ledger *pool.Ledger) (*pool.Spend, error) {
	var spend *pool.Spend
	err := metrics.Time("prove", func() error {
		var err error
		spend, err = pool.CreateSpend(acc, cfg.LeakIndex, secret, ccs, pk)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("spend failed: %w", err)
	}

	if err := metrics.Time("verify", func() error { return pool.VerifySpend(spend, vk) }); err != nil {
		metrics.IncrementCounter("spends_rejected")
		return nil, fmt.Errorf("spend verification failed: %w", err)
	}
	if err := ledger.Append(spend); err != nil {
		metrics.IncrementCounter("spends_rejected")
		return nil, fmt.Errorf("ledger rejected spend: %w", err)
	}
	metrics.IncrementCounter("spends_accepted")
	logger.Info().Str("nullifier", spend.Nullifier).Msg("spend accepted")
	return spend, nil
}

// fixtures loads the accumulated leaf list and the leaked secret, generating
// both on first run with the leaked secret at the configured index.
func fixtures(cfg *Config, logger zerolog.Logger) ([]fr.Element, fr.Element, error) {
	leaves, leavesErr := pool.LoadLeaves(cfg.LeavesPath)
	secret, secretErr := pool.LoadSecret(cfg.LeakedSecretPath)
	if leavesErr == nil && secretErr == nil {
		return leaves, secret, nil
	}

	logger.Info().Int("pool_size", cfg.PoolSize).Msg("generating fresh pool fixtures")
	leaves = make([]fr.Element, cfg.PoolSize)
	for i := 0; i < cfg.PoolSize; i++ {
		s, err := pool.NewSecret()
		if err != nil {
			return nil, fr.Element{}, err
		}
		_, leaves[i] = pool.DeriveCommitment(s)
		if i == cfg.LeakIndex {
			secret = s
		}
	}
	if err := pool.SaveLeaves(cfg.LeavesPath, leaves); err != nil {
		return nil, fr.Element{}, err
	}
	if err := pool.SaveSecret(cfg.LeakedSecretPath, secret); err != nil {
		return nil, fr.Element{}, err
	}
	return leaves, secret, nil
}
