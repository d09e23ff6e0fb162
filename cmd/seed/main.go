// seed simulates discovery sources by posting candidate batches to the
// ingest endpoint. Useful for local development and demos.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

type evidence struct {
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

type candidate struct {
	ID              string     `json:"id,omitempty"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	IP              string     `json:"ip,omitempty"`
	Hostname        string     `json:"hostname,omitempty"`
	Port            int        `json:"port,omitempty"`
	Version         string     `json:"version,omitempty"`
	Vendor          string     `json:"vendor,omitempty"`
	DiscoveryMethod string     `json:"discovery_method"`
	DiscoveredAt    time.Time  `json:"discovered_at"`
	Confidence      int        `json:"confidence"`
	Evidences       []evidence `json:"evidences,omitempty"`
}

type batch struct {
	Source     string      `json:"source"`
	Candidates []candidate `json:"candidates"`
}

type source struct {
	name   string
	method string
	make   func(r *rand.Rand, n int) []candidate
}

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "API base URL (or set ASSUREOPS_API_URL env)")
	count := flag.Int("count", 20, "Candidates per discovery source")
	flag.Parse()

	baseURL := *apiURL
	if env := os.Getenv("ASSUREOPS_API_URL"); env != "" {
		baseURL = env
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	sources := []source{
		{name: "netscan-dc1", method: "log_analysis", make: makeHosts},
		{name: "cmdb-export", method: "cmdb_sync", make: makeMiddleware},
		{name: "apm-import", method: "import", make: makeApplications},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			r := rand.New(rand.NewSource(time.Now().UnixNano()))
			b := batch{Source: src.name}
			for _, c := range src.make(r, *count) {
				c.DiscoveryMethod = src.method
				c.DiscoveredAt = time.Now().UTC()
				b.Candidates = append(b.Candidates, c)
			}
			return postBatch(ctx, baseURL, b)
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Printf("Error seeding candidates: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Seeding complete")
}

func postBatch(ctx context.Context, baseURL string, b batch) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/v1/ingest/candidates", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("post batch from %s: %w", b.Source, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("batch from %s rejected: %d %s", b.Source, resp.StatusCode, string(body))
	}

	var result struct {
		Accepted int `json:"accepted"`
		Skipped  int `json:"skipped"`
		Rejected int `json:"rejected"`
	}
	if err := json.Unmarshal(body, &result); err == nil {
		fmt.Printf("%s: accepted=%d skipped=%d rejected=%d\n", b.Source, result.Accepted, result.Skipped, result.Rejected)
	}

	return nil
}

func makeHosts(r *rand.Rand, n int) []candidate {
	out := make([]candidate, 0, n)
	for i := 0; i < n; i++ {
		ip := fmt.Sprintf("192.168.%d.%d", 1+r.Intn(4), 10+r.Intn(200))
		out = append(out, candidate{
			Name:       fmt.Sprintf("host-%03d", i+1),
			Type:       "host",
			IP:         ip,
			Hostname:   fmt.Sprintf("host-%03d.dc1.internal", i+1),
			Confidence: 60 + r.Intn(40),
			Evidences: []evidence{{
				Type:      "network_traffic",
				Content:   fmt.Sprintf("SSH session observed from %s", ip),
				Timestamp: time.Now().UTC(),
				Source:    "netscan-dc1",
			}},
		})
	}
	return out
}

func makeMiddleware(r *rand.Rand, n int) []candidate {
	kinds := []struct {
		typ    string
		vendor string
		port   int
	}{
		{"database", "PostgreSQL", 5432},
		{"database", "MySQL", 3306},
		{"middleware", "Redis", 6379},
		{"middleware", "RabbitMQ", 5672},
	}

	out := make([]candidate, 0, n)
	for i := 0; i < n; i++ {
		k := kinds[r.Intn(len(kinds))]
		out = append(out, candidate{
			Name:       fmt.Sprintf("%s-%03d", k.vendor, i+1),
			Type:       k.typ,
			IP:         fmt.Sprintf("10.20.%d.%d", r.Intn(8), 10+r.Intn(200)),
			Port:       k.port,
			Vendor:     k.vendor,
			Confidence: 80 + r.Intn(20),
		})
	}
	return out
}

func makeApplications(r *rand.Rand, n int) []candidate {
	out := make([]candidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, candidate{
			Name:       fmt.Sprintf("svc-orders-%02d", i+1),
			Type:       "application",
			IP:         fmt.Sprintf("172.16.%d.%d", r.Intn(16), 10+r.Intn(200)),
			Port:       8000 + r.Intn(1000),
			Version:    fmt.Sprintf("1.%d.%d", r.Intn(10), r.Intn(20)),
			Confidence: 70 + r.Intn(30),
			Evidences: []evidence{{
				Type:      "api_call",
				Content:   "Instrumented service reporting to APM",
				Timestamp: time.Now().UTC(),
				Source:    "apm-import",
			}},
		})
	}
	return out
}
