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
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numWallets   = 500
	adminWallet  = "loadtest-admin"
	creator      = "loadtest-creator"
)

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
	fmt.Println("=== mintd Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Wallets: %d\n\n", numWorkers, testDuration, numWallets)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
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

	// Phase 0: set up the sale and fund the wallets
	fmt.Println("\n--- Phase 0: Sale setup ---")
	if !setupSale() {
		return
	}

	// Phase 1: Fund wallets under concurrency
	fmt.Println("\n--- Phase 1: Deposits (POST /ledger/deposit) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doDeposit(rng)
	})

	// Phase 2: Mixed claim/read load
	fmt.Println("\n--- Phase 2: Mixed load (50% claim, 20% deposit, 30% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.50:
			return doClaim(rng)
		case r < 0.70:
			return doDeposit(rng)
		case r < 0.80:
			return doGetSale()
		case r < 0.90:
			return doGetCounter(rng)
		default:
			return doGetAssets()
		}
	})

	// Phase 3: Read-heavy load
	fmt.Println("\n--- Phase 3: Read-heavy load (10% claim, 90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doClaim(rng)
		case r < 0.40:
			return doGetSale()
		case r < 0.60:
			return doGetCounter(rng)
		case r < 0.80:
			return doGetBalance(rng)
		default:
			return doGetAssets()
		}
	})
}

func setupSale() bool {
	ok := postExpect("/initialize", map[string]interface{}{
		"initializer":  adminWallet,
		"creator":      creator,
		"max_supply":   1_000_000,
		"og_max":       10,
		"wl_max":       10,
		"public_max":   100,
		"og_price":     5,
		"wl_price":     7,
		"public_price": 10,
	}, http.StatusCreated, http.StatusConflict)
	ok = ok && postExpect("/admin/uri", map[string]interface{}{
		"caller": adminWallet,
		"uri":    "https://meta.example/",
	}, http.StatusOK)
	ok = ok && postExpect("/admin/stage", map[string]interface{}{
		"caller": adminWallet,
		"stage":  2,
	}, http.StatusOK)
	if ok {
		fmt.Println("  sale initialized, stage=public")
	}
	return ok
}

func postExpect(path string, body map[string]interface{}, accepted ...int) bool {
	data, _ := json.Marshal(body)
	resp, err := httpClient.Post(baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("  FAILED: POST %s: %v\n", path, err)
		return false
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	for _, code := range accepted {
		if resp.StatusCode == code {
			return true
		}
	}
	fmt.Printf("  FAILED: POST %s: status %d\n", path, resp.StatusCode)
	return false
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

	fmt.Printf("\n  %-26s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 92))

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

		fmt.Printf("  %-26s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 92))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func wallet(rng *rand.Rand) string {
	return fmt.Sprintf("wallet_%d", rng.Intn(numWallets))
}

func doDeposit(rng *rand.Rand) result {
	body := map[string]interface{}{
		"wallet": wallet(rng),
		"amount": rng.Intn(100) + 10,
	}
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/ledger/deposit", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /ledger/deposit", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /ledger/deposit", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doClaim(rng *rand.Rand) result {
	body := map[string]interface{}{
		"payer":   wallet(rng),
		"owner":   adminWallet,
		"creator": creator,
		"title":   fmt.Sprintf("Unit by %d", rng.Intn(numWallets)),
	}
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/claim", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /claim", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// 201 is a mint; 402/403 are expected rejections (no funds, cap hit)
	okStatus := resp.StatusCode == 201 || resp.StatusCode == 402 || resp.StatusCode == 403
	return result{"POST /claim", resp.StatusCode, lat, !okStatus}
}

func doGetSale() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/sale")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /sale", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /sale", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetCounter(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/sale/counter?wallet=%s", baseURL, wallet(rng))
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /sale/counter", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /sale/counter", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetBalance(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/ledger/balance?wallet=%s", baseURL, wallet(rng))
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /ledger/balance", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /ledger/balance", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetAssets() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/sale/assets")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /sale/assets", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /sale/assets", resp.StatusCode, lat, resp.StatusCode != 200}
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
