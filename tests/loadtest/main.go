package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:8080"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numTanks     = 500
	numWeeks     = 26
)

var regions = []string{
	"fujairah_uae",
	"rotterdam_netherlands",
	"jurong_island_singapore",
	"houston_ship_channel_usa",
	"cushing_ok",
}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== TankWatch Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Tanks: %d | Regions: %d | Weeks: %d\n\n", numTanks, len(regions), numWeeks)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/regions")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: Seed data with scene batches
	fmt.Println("\n--- Phase 1: Seeding data (POST /samples) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doPostSamples(rng)
	})

	// Wait for aggregation
	fmt.Println("\nWaiting 2s for aggregation...")
	time.Sleep(2 * time.Second)

	// Phase 2: Mixed read/write load
	fmt.Println("\n--- Phase 2: Mixed load (70% POST, 30% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.70:
			return doPostSamples(rng)
		case r < 0.80:
			return doGetTanks(rng)
		case r < 0.87:
			return doGetTankWeeks(rng)
		case r < 0.94:
			return doGetCoverage(rng)
		default:
			return doGetRegions()
		}
	})

	// Phase 3: Read-heavy load
	fmt.Println("\n--- Phase 3: Read-heavy load (10% POST, 90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doPostSamples(rng)
		case r < 0.40:
			return doGetTanks(rng)
		case r < 0.60:
			return doGetTankWeeks(rng)
		case r < 0.80:
			return doGetCoverage(rng)
		default:
			return doGetRegions()
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

// sceneTime picks a random day inside the covered week range, after the
// 2024-01-03 anchor.
func sceneTime(rng *rand.Rand) string {
	anchor := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	day := rng.Intn(numWeeks * 7)
	hour := rng.Intn(24)
	return anchor.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour).Format(time.RFC3339)
}

func doPostSamples(rng *rand.Rand) result {
	nRows := rng.Intn(20) + 1
	rows := make([]map[string]interface{}, nRows)
	for i := range rows {
		row := map[string]interface{}{
			"tank_id":     rng.Intn(numTanks) + 1,
			"b2":          rng.Intn(3000) + 500,
			"b3":          rng.Intn(3000) + 500,
			"b4":          rng.Intn(3000) + 500,
			"b8":          rng.Intn(4000) + 500,
			"b11":         rng.Intn(3000) + 500,
			"scl":         rng.Intn(12),
			"pixel_count": rng.Intn(50) + 10,
		}
		if rng.Float64() < 0.30 {
			row["texture_contrast"] = rng.Float64() * 100
		}
		if rng.Float64() < 0.05 {
			row["qa60"] = 1 << 10
		}
		rows[i] = row
	}

	body := map[string]interface{}{
		"region":                  regions[rng.Intn(len(regions))],
		"scene_time":              sceneTime(rng),
		"cloudy_pixel_percentage": rng.Float64() * 40,
		"solar_zenith_angle":      20 + rng.Float64()*50,
		"rows":                    rows,
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/samples", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /samples", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /samples", resp.StatusCode, lat, resp.StatusCode != 201}
}

func doGetTanks(rng *rand.Rand) result {
	region := regions[rng.Intn(len(regions))]
	url := fmt.Sprintf("%s/tanks?region=%s", baseURL, region)
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /tanks", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /tanks", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetTankWeeks(rng *rand.Rand) result {
	region := regions[rng.Intn(len(regions))]
	url := fmt.Sprintf("%s/tankweeks?region=%s", baseURL, region)
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /tankweeks", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /tankweeks", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetCoverage(rng *rand.Rand) result {
	tank := rng.Intn(numTanks) + 1
	url := fmt.Sprintf("%s/coverage?tank=%d&through=%d", baseURL, tank, numWeeks-1)
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /coverage", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /coverage", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetRegions() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/regions")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /regions", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /regions", resp.StatusCode, lat, resp.StatusCode != 200}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
