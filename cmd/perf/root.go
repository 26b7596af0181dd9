package perf

import (
	"encoding/csv"
	"fmt"
	"github.com/ValentinKolb/rangevec/cmd/util"
	"github.com/ValentinKolb/rangevec/lib/common"
	"github.com/ValentinKolb/rangevec/lib/rangevec"
	rvtesting "github.com/ValentinKolb/rangevec/lib/rangevec/testing"
	"github.com/ValentinKolb/rangevec/lib/registry"
	"github.com/VictoriaMetrics/metrics"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

var Logger = logger.GetLogger("perf")

var (
	// PerfCmd runs the RangeVec benchmarks
	PerfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for RangeVec",
		Long:    "",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfConfig *common.PerfConfig
)

func init() {
	key := "width"
	PerfCmd.Flags().Uint64(key, 1024, util.WrapString("Number of consecutive indices every benchmark works on"))
	key = "stores"
	PerfCmd.Flags().Int(key, 100, util.WrapString("How many different stores to use for the registry test"))
	key = "threads"
	PerfCmd.Flags().Int(key, 10, util.WrapString("Parallelism of the registry test (multiplied by GOMAXPROCS)"))
	key = "skip"
	PerfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set-scatter,iter)"))
	key = "csv"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
	key = "prometheus"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results in the Prometheus text format"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	perfConfig = util.GetPerfConfig()
	return perfConfig.Validate()
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for RangeVec")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(perfConfig.String())

	fmt.Println("starting tests...")

	results := make(map[string]testing.BenchmarkResult)
	var order []string

	record := func(test string, result testing.BenchmarkResult) {
		results[test] = result
		order = append(order, test)
		printResult(test, result)
	}

	for _, bm := range rvtesting.Benchmarks {
		if perfConfig.ShouldSkip(bm.Name) {
			record(bm.Name, testing.BenchmarkResult{})
			continue
		}
		record(bm.Name, testing.Benchmark(func(b *testing.B) {
			bm.Run(b, rangevec.New[int64](), perfConfig.Width)
		}))
	}

	if perfConfig.ShouldSkip("registry") {
		record("registry", testing.BenchmarkResult{})
	} else {
		record("registry", testing.Benchmark(benchmarkRegistry))
	}

	// Write results to csv if specified
	if csvPath := perfConfig.CSVPath; csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, order, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %w", err)
		}
		fmt.Println("Export complete")
	}

	if path := perfConfig.PrometheusPath; path != "" {
		fmt.Printf("\nExporting results in Prometheus format: %s\n", path)
		if err := writeResultsToPrometheus(path, order, results); err != nil {
			return fmt.Errorf("failed to export results to Prometheus: %w", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Registry benchmark
// --------------------------------------------------------------------------

// benchmarkRegistry mutates many stores of a shared registry from parallel goroutines
func benchmarkRegistry(b *testing.B) {
	width := perfConfig.Width
	reg := registry.New(rangevec.New[int64])

	names := make([]string, perfConfig.Stores)
	for i := range names {
		names[i] = uuid.NewString()
	}

	// fill all stores in parallel
	var g errgroup.Group
	g.SetLimit(perfConfig.Threads)
	for _, name := range names {
		g.Go(func() error {
			reg.Update(name, func(rv *rangevec.RangeVec[int64]) {
				rv.MutateRange(rangevec.NewSpan(0, width), func(i uint64, v *int64) { *v = int64(i) + 1 })
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		b.Fatalf("failed to prepare stores: %v", err)
	}
	Logger.Debugf("prepared %d stores with %d values each", reg.Len(), width)

	b.SetParallelism(perfConfig.Threads)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			name := names[counter%len(names)]
			index := uint64(counter) % (2 * width)
			reg.Update(name, func(rv *rangevec.RangeVec[int64]) {
				rv.Mutate(index, func(v *int64) { *v ^= 1 << 16 })
			})
			counter++
		}
	})
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// nsPerOp returns the duration per operation, 0 for skipped tests
func nsPerOp(result testing.BenchmarkResult) float64 {
	if result.N == 0 {
		return 0
	}
	return math.Max(float64(result.T.Nanoseconds())/float64(result.N), 1) // prevent division by zero
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	ns := nsPerOp(result)
	if ns == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	opsPerSec := 1.0 / (ns / 1e9)
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, ns, time.Duration(ns), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, order []string, results map[string]testing.BenchmarkResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Width", "Stores", "Threads",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, test := range order {
		ns := nsPerOp(results[test])
		var opsPerSec float64
		if ns > 0 {
			opsPerSec = 1.0 / (ns / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", ns),
			time.Duration(ns).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			strconv.FormatBool(ns == 0),
			strconv.FormatUint(perfConfig.Width, 10),
			strconv.Itoa(perfConfig.Stores),
			strconv.Itoa(perfConfig.Threads),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %w", test, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// writeResultsToPrometheus writes benchmark results in the Prometheus text exposition format
func writeResultsToPrometheus(path string, order []string, results map[string]testing.BenchmarkResult) error {
	set := metrics.NewSet()

	width := float64(perfConfig.Width)
	set.GetOrCreateGauge("rvec_perf_width", func() float64 { return width })

	for _, test := range order {
		result := results[test]
		if result.N == 0 {
			continue
		}
		label := strings.ReplaceAll(test, `"`, "")
		ns := nsPerOp(result)
		set.GetOrCreateGauge(fmt.Sprintf(`rvec_perf_ns_per_op{test="%s"}`, label), func() float64 { return ns })
		set.GetOrCreateCounter(fmt.Sprintf(`rvec_perf_iterations_total{test="%s"}`, label)).Add(result.N)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	set.WritePrometheus(file)
	return nil
}
