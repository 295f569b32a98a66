package stats

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

const (
	BYTE = 1 << (10 * iota)
	KILOBYTE
	MEGABYTE
	GIGABYTE
)

var (
	// PollsTotal counts issued lifecycle polls by outcome
	// (pending, confirmed, unknown, transient_error).
	PollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talesd_polls_total",
		Help: "Total number of transaction lifecycle polls by outcome.",
	}, []string{"outcome"})

	// ConfirmationsTotal counts terminal confirmations by source
	// (mempool, lookup).
	ConfirmationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talesd_confirmations_total",
		Help: "Total number of confirmed transactions by confirmation source.",
	}, []string{"source"})

	// SubmissionsTotal counts spend submissions by result (accepted,
	// rejected).
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talesd_submissions_total",
		Help: "Total number of spend submissions by result.",
	}, []string{"result"})
)

// EnableMemoryStatistics enables a goroutine that periodically prints memory
// usage of the process and, on shutdown, dumps the collected prometheus
// counters to a file inside the given datadir.
func EnableMemoryStatistics(
	ctx context.Context, interval time.Duration, datadir string,
) {
	ticker := time.NewTicker(interval)

	go func() {
		for {
			select {
			case <-ticker.C:
				PrintMemoryStatistics()
				PrintNumOfRoutines()
			case <-ctx.Done():
				ticker.Stop()
				if err := DumpMetrics(datadir); err != nil {
					fmt.Println(err)
				}
				return
			}
		}
	}()
}

func toMegabytes(bytes uint64) float64 {
	return float64(bytes) / MEGABYTE
}

// PrintMemoryStatistics prints memory statistics using the go runtime
// library.
func PrintMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Infof(
		"Total allocated: %.1fMB, Heap allocated: %.1fMB, "+
			"Allocated objects count: %v, Freed objects count: %v",
		toMegabytes(memStats.TotalAlloc),
		toMegabytes(memStats.HeapAlloc),
		memStats.Mallocs,
		memStats.Frees,
	)
}

// PrintNumOfRoutines prints the number of goroutines currently running.
func PrintNumOfRoutines() {
	log.Infof("Num of go routines: %v", runtime.NumGoroutine())
}

// DumpMetrics writes the registered prometheus metrics to a stats file.
func DumpMetrics(datadir string) error {
	file, err := os.OpenFile(
		filepath.Join(datadir, "stats"),
		os.O_APPEND|os.O_CREATE|os.O_RDWR,
		0644,
	)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	metricFamily, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}

	return writer.Flush()
}
