package main

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/taurusgroup/fractional-elgamal/internal/hash"
	"github.com/taurusgroup/fractional-elgamal/pkg/pool"
	"go.uber.org/zap"
)

const envPrefix = "ECELGAMAL"

// newCommand returns the root command, with its flags bound to a viper
// instance of its own so that ECELGAMAL_* variables override the defaults.
func newCommand() (*cobra.Command, error) {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "elgamal-demo",
		Short: "Run an ElGamal exchange over a curve with rational coefficients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.OutOrStdout(), v)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.String("p", "178987", "prime modulus")
	flags.String("a", "7/3", "coefficient a as num/den")
	flags.String("b", "2/5", "coefficient b as num/den")
	flags.String("gx", "116485", "generator x")
	flags.String("gy", "32401", "generator y")
	flags.String("mx", "47542", "message x")
	flags.String("my", "46746", "message y")
	flags.String("order", "", "order of the generator, brute forced when empty")
	flags.String("seed", "", "derive all randomness from this seed instead of crypto/rand")
	flags.Int("batch", 0, "also round trip this many multiples of the message over a worker pool")
	flags.Int("workers", 0, "worker count for --batch, 0 for one per CPU")
	flags.String("log-level", "info", "log level")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	return cmd, nil
}

func run(w io.Writer, v *viper.Viper) error {
	level, err := zap.ParseAtomicLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	params, err := paramsFromConfig(v)
	if err != nil {
		return err
	}

	var rnd io.Reader = rand.Reader
	if seed := v.GetString("seed"); seed != "" {
		log.Warnw("using seeded randomness", "seed", seed)
		rnd = hash.New(seed).Digest()
	}

	var pl *pool.Pool
	if params.Batch > 0 {
		pl = pool.NewPool(v.GetInt("workers"))
		defer pl.TearDown()
	}

	if _, err = Run(w, log, rnd, pl, params); err != nil {
		log.Errorw("exchange failed", "error", err)
		return err
	}
	return nil
}

func paramsFromConfig(v *viper.Viper) (Params, error) {
	var params Params
	var err error
	ints := map[string]**big.Int{
		"p":  &params.P,
		"gx": &params.G[0],
		"gy": &params.G[1],
		"mx": &params.M[0],
		"my": &params.M[1],
	}
	for key, dst := range ints {
		x, ok := new(big.Int).SetString(v.GetString(key), 10)
		if !ok {
			return Params{}, fmt.Errorf("--%s: invalid integer %q", key, v.GetString(key))
		}
		*dst = x
	}
	if order := v.GetString("order"); order != "" {
		n, ok := new(big.Int).SetString(order, 10)
		if !ok || n.Sign() <= 0 {
			return Params{}, fmt.Errorf("--order: invalid integer %q", order)
		}
		params.Order = n
	}
	if params.A, err = ParseRational(v.GetString("a")); err != nil {
		return Params{}, fmt.Errorf("--a: %w", err)
	}
	if params.B, err = ParseRational(v.GetString("b")); err != nil {
		return Params{}, fmt.Errorf("--b: %w", err)
	}
	params.Batch = v.GetInt("batch")
	return params, nil
}

func main() {
	cmd, err := newCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cmd.Execute() != nil {
		os.Exit(1)
	}
}
