package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds the benchmark settings
var (
	targetURL   string
	concurrency int
	duration    time.Duration
	workload    string
	bookCount   int
)

// Metrics
var (
	totalRequests uint64
	success201    uint64 // Reservations created
	fail409       uint64 // Duplicate reservations
	fail422       uint64 // Out-of-range quantity (book sold out)
	failOther     uint64
)

func init() {
	flag.StringVar(&targetURL, "url", "http://localhost:8080", "API Base URL")
	flag.IntVar(&concurrency, "workers", 10, "Number of concurrent workers")
	flag.DurationVar(&duration, "duration", 30*time.Second, "Test duration")
	flag.StringVar(&workload, "workload", "uniform", "Workload type: uniform | hotspot")
	flag.IntVar(&bookCount, "books", 10, "Number of catalog books to target")
}

func main() {
	flag.Parse()
	log.Printf("Starting Benchmark: %s | Workers: %d | Duration: %s", workload, concurrency, duration)

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(concurrency)

	for i := 0; i < concurrency; i++ {
		go worker(&wg, i, start)
	}

	wg.Wait()
	printResults(time.Since(start))
}

func worker(wg *sync.WaitGroup, id int, start time.Time) {
	defer wg.Done()
	client := &http.Client{Timeout: 5 * time.Second}
	userID := fmt.Sprintf("bench-user-%d", id)

	for time.Since(start) < duration {
		bookID := pickBook()

		payload := map[string]interface{}{
			"book_id":  bookID,
			"user_id":  userID,
			"quantity": 1,
		}
		body, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", targetURL+"/api/v1/reservations", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			atomic.AddUint64(&failOther, 1)
			continue
		}

		atomic.AddUint64(&totalRequests, 1)
		switch resp.StatusCode {
		case 201:
			atomic.AddUint64(&success201, 1)
		case 409:
			atomic.AddUint64(&fail409, 1)
		case 422:
			atomic.AddUint64(&fail422, 1)
		default:
			atomic.AddUint64(&failOther, 1)
		}
		resp.Body.Close()

		// Release the copy so the ledger doesn't saturate: contention,
		// not exhaustion, is what this measures.
		if resp.StatusCode == 201 {
			cancel, _ := http.NewRequest("DELETE",
				fmt.Sprintf("%s/api/v1/reservations/%d?user_id=%s", targetURL, bookID, userID), nil)
			if cresp, err := client.Do(cancel); err == nil {
				cresp.Body.Close()
			}
		}
	}
}

func pickBook() int {
	if workload == "hotspot" {
		// Hotspot: 90% of traffic fights over Book 1
		if rand.Float32() < 0.90 {
			return 1
		}
	}
	return rand.Intn(bookCount) + 1
}

func printResults(d time.Duration) {
	total := atomic.LoadUint64(&totalRequests)
	s201 := atomic.LoadUint64(&success201)
	f409 := atomic.LoadUint64(&fail409)
	f422 := atomic.LoadUint64(&fail422)
	fErr := atomic.LoadUint64(&failOther)

	tps := float64(total) / d.Seconds()
	rejectRate := float64(f409+f422) / float64(total) * 100

	results := map[string]interface{}{
		"workload":          workload,
		"duration_sec":      d.Seconds(),
		"total_requests":    total,
		"throughput_tps":    tps,
		"reservations_made": s201,
		"duplicates":        f409,
		"sold_out":          f422,
		"reject_rate_pct":   rejectRate,
		"errors":            fErr,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(results)

	filename := fmt.Sprintf("results_%s.json", workload)
	file, _ := os.Create(filename)
	defer file.Close()
	json.NewEncoder(file).Encode(results)
}
