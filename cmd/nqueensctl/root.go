package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nqueens/internal/storage"
	nqapi "nqueens/pkg/nqueens"
)

var rootCmd = &cobra.Command{
	Use:   "nqueensctl",
	Short: "Genetic-algorithm N-queens solver",
	Long: `nqueensctl searches for N-queens placements with a genetic algorithm:
permutation genomes, PMX crossover, swap mutation, and elitism. Runs are
recorded and can be inspected afterwards.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default is ./nqueensctl.yaml)")
	rootCmd.PersistentFlags().String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	rootCmd.PersistentFlags().String("db-path", "nqueens.db", "sqlite database path")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug|info|warn|error")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db-path"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nqueensctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("NQUEENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(viper.GetString("log_level")),
	})))
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newClient() (*nqapi.Client, error) {
	return nqapi.New(nqapi.Options{
		StoreKind: viper.GetString("store"),
		DBPath:    viper.GetString("db_path"),
		Logger:    slog.Default(),
	})
}
