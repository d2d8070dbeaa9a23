package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/atomic"
)

var (
	names      = []string{"John", "Jane", "Max", "Anna", "Lee"}
	locations  = []string{"Berlin", "Paris", "Rome", "Madrid", "London"}
	categories = []string{"FITNESS", "FOOD", "TECH", "TRAVEL", "FASHION,BEAUTY"}
	genders    = []string{"male", "female", "other"}
	platforms  = []string{"INSTAGRAM", "TIKTOK"}
)

type loadTest struct {
	baseURL  string
	workers  int
	duration time.Duration
	client   *http.Client
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
	lt := &loadTest{}
	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Drive a running instance with a search-heavy request mix",
		RunE: func(_ *cobra.Command, _ []string) error {
			return lt.run()
		},
	}
	cmd.Flags().StringVar(&lt.baseURL, "url", "http://127.0.0.1:8080", "base URL including the configured base path")
	cmd.Flags().IntVar(&lt.workers, "workers", 50, "concurrent workers")
	cmd.Flags().DurationVar(&lt.duration, "duration", 10*time.Second, "duration of each phase")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (lt *loadTest) run() error {
	lt.baseURL = strings.TrimSuffix(lt.baseURL, "/")
	lt.client = &http.Client{
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

	fmt.Println("=== Influencer Search Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", lt.workers, lt.duration)

	fmt.Print("Waiting for server... ")
	if err := lt.waitReady(); err != nil {
		fmt.Println("FAILED")
		return err
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Seeding posts (POST /posts) ---")
	lt.runPhase(func(rng *rand.Rand) result {
		return lt.createPost(rng)
	})

	fmt.Println("\n--- Phase 2: Simple searches ---")
	lt.runPhase(func(rng *rand.Rand) result {
		switch r := rng.Float64(); {
		case r < 0.25:
			return lt.get("searchByName", url.Values{"name": {pick(rng, names)}, "limit": {"10"}})
		case r < 0.45:
			return lt.get("searchByLocation", url.Values{"location": {pick(rng, locations)}, "limit": {"10"}})
		case r < 0.60:
			return lt.get("searchByCategory", url.Values{"category": {pick(rng, categories)}, "limit": {"10"}})
		case r < 0.75:
			return lt.get("searchByGender", url.Values{"gender": {pick(rng, genders)}, "limit": {"10"}})
		case r < 0.90:
			return lt.get("searchByPlatform", url.Values{"platform": {pick(rng, platforms)}, "limit": {"10"}})
		default:
			return lt.get("posts/search/platform", url.Values{"platform": {pick(rng, platforms)}, "limit": {"10"}})
		}
	})

	fmt.Println("\n--- Phase 3: Combined and metric searches ---")
	lt.runPhase(func(rng *rand.Rand) result {
		switch r := rng.Float64(); {
		case r < 0.50:
			return lt.get("searchInfluencers", url.Values{
				"platform":      {pick(rng, platforms)},
				"min_followers": {fmt.Sprint(rng.Intn(100000))},
				"limit":         {"20"},
			})
		case r < 0.70:
			return lt.get("searchByFollowersCount", url.Values{
				"platform":      {pick(rng, platforms)},
				"min_followers": {fmt.Sprint(rng.Intn(1000000))},
			})
		case r < 0.85:
			return lt.get("searchByEngagementRate", url.Values{
				"platform":            {pick(rng, platforms)},
				"min_engagement_rate": {fmt.Sprintf("%.1f", rng.Float64()*10)},
			})
		default:
			return lt.searchByMetrics(rng)
		}
	})
	return nil
}

func (lt *loadTest) waitReady() error {
	for i := 0; i < 30; i++ {
		resp, err := lt.client.Get(lt.baseURL + "/searchByName?name=a&limit=1")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("server %s not responding", lt.baseURL)
}

func (lt *loadTest) runPhase(workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	totalOps := atomic.NewInt64(0)
	stop := make(chan struct{})

	for i := 0; i < lt.workers; i++ {
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
					totalOps.Inc()
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

	time.Sleep(lt.duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, lt.duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-32s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 98))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-32s %8s %6d %10s %10s %10s %10s\n",
			ep, humanize.Comma(s.count), s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		fmt.Println("  no requests completed")
		return
	}
	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 98))
	fmt.Printf("  Total: %s reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		humanize.Comma(totalOps), totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func (lt *loadTest) get(path string, query url.Values) result {
	endpoint := "GET /" + path
	start := time.Now()
	resp, err := lt.client.Get(lt.baseURL + "/" + path + "?" + query.Encode())
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func (lt *loadTest) post(path string, body any, want int) result {
	endpoint := "POST /" + path
	data, err := json.Marshal(body)
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	start := time.Now()
	resp, err := lt.client.Post(lt.baseURL+"/"+path, "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func (lt *loadTest) createPost(rng *rand.Rand) result {
	n := rng.Intn(100000)
	return lt.post("posts", map[string]any{
		"influencer_id": fmt.Sprintf("inf-%d", rng.Intn(500)),
		"platform":      pick(rng, platforms),
		"title":         fmt.Sprintf("post %d", n),
		"url":           fmt.Sprintf("https://example.com/p/%d", n),
		"likes":         rng.Intn(10000),
		"views":         rng.Intn(1000000),
	}, http.StatusCreated)
}

func (lt *loadTest) searchByMetrics(rng *rand.Rand) result {
	return lt.post("search_by_metrics", map[string]any{
		"platform": pick(rng, platforms),
		"metrics_ranges": map[string]any{
			"total_followers": map[string]any{"min": rng.Intn(50000)},
			"engagement_rate": map[string]any{"min": 0, "max": 1 + rng.Float64()*9},
		},
	}, http.StatusOK)
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
