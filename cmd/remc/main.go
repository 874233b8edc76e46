package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/remc/internal/config"
	"github.com/san-kum/remc/internal/experiment"
	"github.com/san-kum/remc/internal/metrics"
	"github.com/san-kum/remc/internal/optim"
	"github.com/san-kum/remc/internal/storage"
	"github.com/san-kum/remc/internal/tui"
	"github.com/san-kum/remc/internal/viz"
)

var (
	dataDir      string
	configFile   string
	preset       string
	algorithm    string
	sampler      string
	scheme       string
	samples      int
	swapInterval int
	seed         int64
	sigmas       []float64
	temperatures []float64
	replicates   int
	bins         int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "remc",
		Short: "replica exchange Monte Carlo lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".remc", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&replicates, "replicates", 1, "independent repeats over consecutive seeds")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with a live view",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot traces and histograms of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bins, "bins", 30, "histogram bins")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ALGORITHM\tPRESET")
			for alg := range config.Presets {
				for _, name := range config.ListPresets(alg) {
					fmt.Fprintf(w, "%s\t%s\n", alg, name)
				}
			}
			return w.Flush()
		},
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search the local stepsize for a target acceptance rate",
		RunE:  tuneStepsize,
	}
	addSimFlags(tuneCmd)

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, presetsCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset name")
	cmd.Flags().StringVar(&algorithm, "algorithm", "re", "exchange algorithm (re|mdrens|trens)")
	cmd.Flags().StringVar(&sampler, "sampler", "rwmc", "local sampler (rwmc|hmc)")
	cmd.Flags().StringVar(&scheme, "scheme", "alternating", "swap scheme (alternating|random)")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of samples")
	cmd.Flags().IntVar(&swapInterval, "swap-interval", config.DefaultSwapInterval, "steps between swap rounds")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64SliceVar(&sigmas, "sigmas", nil, "per-chain target sigmas")
	cmd.Flags().Float64SliceVar(&temperatures, "temperatures", nil, "per-chain temperatures")
}

func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if preset != "" {
		cfg := config.GetPreset(algorithm, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q for algorithm %q", preset, algorithm)
		}
		return cfg, nil
	}

	cfg := config.DefaultConfig()
	cfg.Algorithm = algorithm
	cfg.Sampler = sampler
	cfg.Scheme = scheme
	cfg.Samples = samples
	cfg.SwapInterval = swapInterval
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	if len(sigmas) > 0 {
		cfg.Chains = cfg.Chains[:0]
		for i, s := range sigmas {
			ch := config.ChainConfig{Sigma: s, Temperature: 1.0, Stepsize: config.DefaultStepsize}
			if i < len(temperatures) {
				ch.Temperature = temperatures[i]
			}
			cfg.Chains = append(cfg.Chains, ch)
		}
	} else if len(temperatures) > 0 {
		cfg.Chains = cfg.Chains[:0]
		for _, t := range temperatures {
			cfg.Chains = append(cfg.Chains, config.ChainConfig{Sigma: 1.0, Temperature: t, Stepsize: config.DefaultStepsize})
		}
	}

	return cfg, cfg.Validate()
}

func buildExperiment(cfg *config.Config) (*experiment.Experiment, error) {
	exp, err := experiment.NewRegistry().Build(cfg)
	if err != nil {
		return nil, err
	}
	for i := range cfg.Chains {
		exp.AddMetric(metrics.NewChainMean(fmt.Sprintf("chain%d_mean", i), i, 0))
		exp.AddMetric(metrics.NewChainVariance(fmt.Sprintf("chain%d_var", i), i, 0))
	}
	exp.AddMetric(metrics.NewSwapRate(exp.Algorithm.AcceptanceRates))
	return exp, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if replicates > 1 {
		return runEnsemble(cfg)
	}
	exp, err := buildExperiment(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Algorithm, cfg.Sampler, cfg.Seed, cfg.SwapInterval, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", result.StepsTaken)

	fmt.Println("\nswap acceptance rates:")
	for i, r := range result.AcceptanceRates {
		fmt.Printf("  pair %d: %.4f\n", i, r)
	}
	fmt.Println("\nlocal acceptance rates:")
	for i, r := range result.LocalRates {
		fmt.Printf("  chain %d: %.4f\n", i, r)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runEnsemble(cfg *config.Config) error {
	ens, err := experiment.NewEnsemble(experiment.NewRegistry(), cfg, replicates, cfg.Seed)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := ens.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("%d replicates completed in %v\n", len(results), time.Since(start))
	fmt.Println("\nmean swap acceptance rates:")
	for i, r := range experiment.MeanSwapRates(results) {
		fmt.Printf("  pair %d: %.4f\n", i, r)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := buildExperiment(cfg)
	if err != nil {
		return err
	}
	return tui.RunLive(exp)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tSAMPLER\tTIME\tSAMPLES\tCHAINS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Algorithm,
			run.Sampler,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples,
			run.Chains,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	chains, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("samples: %d\n\n", meta.Samples)

	for i, data := range chains {
		fmt.Println(viz.Trace(data, fmt.Sprintf("chain %d trace", i), 80, 10))
		fmt.Println()
		fmt.Println(viz.Histogram(data, bins, 50, fmt.Sprintf("chain %d histogram", i)))
		fmt.Println()
	}

	fmt.Println(viz.RateBar(meta.AcceptanceRates, 40))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func tuneStepsize(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	search := optim.NewGridSearch(
		[]string{"stepsize"},
		[][]float64{{0.25, 0.5, 1.0, 2.0, 4.0}},
	)

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		tuned := *cfg
		tuned.Chains = make([]config.ChainConfig, len(cfg.Chains))
		copy(tuned.Chains, cfg.Chains)
		for i := range tuned.Chains {
			tuned.Chains[i].Stepsize = params["stepsize"]
		}
		return experiment.NewRegistry().Build(&tuned)
	}

	best, score, err := search.Search(context.Background(), build, optim.TargetAcceptance(0.5))
	if err != nil {
		return err
	}

	fmt.Printf("best stepsize: %.3f (|rate-0.5| = %.4f)\n", best["stepsize"], score)
	return nil
}
