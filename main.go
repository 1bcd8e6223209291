package main

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"adaptorTrim/internal/config"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "adaptorTrim <in_fastq> <out_fasta> <adaptor_seq> <num_errors>",
		Short: "Trim adaptor sequences from short reads",
		Long: `Trim an adaptor, allowing up to num_errors mismatches or indels, and
everything beyond it from each read of a FASTQ file. Reads that got
shorter but not empty are written out.

Run without arguments to check the built-in trimming scenarios.`,
		Args:          cobra.MaximumNArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 4 {
				return runSelfTest(cmd.OutOrStdout())
			}

			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config %s: %w", cfgFile, err)
				}
			}
			cfg, err := config.New(v, args)
			if err != nil {
				return err
			}

			start := time.Now()
			stats, err := ProcessReads(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if !cfg.Quiet {
				printSummary(cmd.OutOrStdout(), stats, time.Since(start))
				fmt.Fprintln(cmd.OutOrStdout(), "\nTrimming completed")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "YAML config file")
	flags.Bool("left", false, "Trim the adaptor and everything before it")
	flags.Int("threads", runtime.NumCPU(), "Worker goroutines")
	flags.Int("batch-size", 10000, "Reads per worker batch")
	flags.Float64("max-error", 0, "Drop trimmed reads with a mean error rate at or above this (0 disables)")
	flags.String("format", "fasta", "Output format: fasta or fastq")
	flags.Int("width", 60, "FASTA line width")
	flags.Bool("quiet", false, "Suppress the run summary")
	if err := v.BindPFlags(flags); err != nil {
		log.Fatalf("binding flags: %v", err)
	}

	v.SetEnvPrefix("ADAPTORTRIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error processing reads: %v", err)
	}
}
