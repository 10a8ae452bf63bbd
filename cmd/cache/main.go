package main

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/cache/internal/cache"
	"github.com/GriffinCanCode/cache/internal/childproc"
	"github.com/GriffinCanCode/cache/internal/cliopts"
	"github.com/GriffinCanCode/cache/internal/config"
	"github.com/GriffinCanCode/cache/internal/logging"
	"github.com/GriffinCanCode/cache/internal/metrics"
	"github.com/GriffinCanCode/cache/internal/pipeline"
	"github.com/GriffinCanCode/cache/internal/runid"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.LoadOrDefault()

	opts, err := cliopts.Parse(os.Args[1:], cliopts.Defaults{
		FlushRate:   cfg.Cache.FlushRate,
		MetricsAddr: cfg.Metrics.Addr,
		LogLevel:    cfg.Logging.Level,
		LogDev:      cfg.Logging.Development,
	}, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cache: %v\n", err)
		return 2
	}

	id := runid.New()

	log, err := logging.New(logging.Config{Level: opts.LogLevel, Development: opts.LogDev})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cache: invalid log level %q: %v\n", opts.LogLevel, err)
		return 2
	}
	log = log.With(zap.String("run", id))
	defer log.Sync()

	var reg *metrics.Registry
	if opts.MetricsAddr != "" {
		reg = metrics.NewRegistry(id)
		go serveMetrics(opts.MetricsAddr, log)
	}

	log.Info("starting child process", zap.String("child", opts.Child), zap.Strings("args", opts.ChildArgs))
	sup, err := childproc.Start(opts.Child, opts.ChildArgs)
	if err != nil {
		log.Error("failed to start child process", zap.Error(err))
		return 1
	}

	store := cache.New()
	queue := pipeline.NewQueue()

	var wg sync.WaitGroup
	var inputErr, outputErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		inputErr = pipeline.Input(pipeline.InputConfig{
			Upstream:   os.Stdin,
			ChildStdin: sup.Stdin(),
			Store:      store,
			Queue:      queue,
			Spec:       opts.Spec,
			FlushRate:  opts.FlushRate,
			Metrics:    reg,
			Log:        log,
		})
	}()
	go func() {
		defer wg.Done()
		outputErr = pipeline.Output(pipeline.OutputConfig{
			ChildStdout: sup.Stdout(),
			Downstream:  os.Stdout,
			Store:       store,
			Queue:       queue,
			Metrics:     reg,
			Log:         log,
		})
	}()

	wg.Wait()

	if inputErr != nil {
		log.Error("input worker failed", zap.Error(inputErr))
	}
	if outputErr != nil {
		log.Error("output worker failed", zap.Error(outputErr))
	}

	exitCode, waitErr := sup.Wait()
	if waitErr != nil {
		log.Warn("child process terminated abnormally", zap.Error(waitErr))
	}
	if reg != nil {
		reg.ChildExitCode.Set(float64(exitCode))
	}

	if inputErr != nil || outputErr != nil {
		return 1
	}
	// Process exit statuses are 8 bits wide, so the 256 that Wait reports
	// for an abnormal termination would read as success; exit 255 instead.
	if exitCode > 255 {
		return 255
	}
	return exitCode
}

func serveMetrics(addr string, log *logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info("serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("metrics listener stopped", zap.Error(err))
	}
}
