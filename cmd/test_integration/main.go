package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL = "http://localhost:8080"
)

func main() {
	baseURL := os.Getenv("COGRAPH_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// Wait for server to start
	if !waitHealthy(baseURL, 10*time.Second) {
		fmt.Println("FAILED: server never became healthy")
		os.Exit(1)
	}
	fmt.Println("PASSED: Health")

	fmt.Println("1. Building default graph...")
	var graph struct {
		Nodes         []json.RawMessage `json:"nodes"`
		Edges         []json.RawMessage `json:"edges"`
		NetworkEffect float64           `json:"network_effect"`
		Band          string            `json:"band"`
	}
	if !getJSON(baseURL+"/graph", &graph) {
		fmt.Println("FAILED: Graph")
		os.Exit(1)
	}
	fmt.Printf("PASSED: Graph (%d nodes, %d edges, network effect %.4f %s)\n",
		len(graph.Nodes), len(graph.Edges), graph.NetworkEffect, graph.Band)

	fmt.Println("2. Ranking clusters...")
	var clusters struct {
		Clusters []struct {
			Codes        []string `json:"codes"`
			Count        int      `json:"count"`
			AvgCitations float64  `json:"avg_citations"`
		} `json:"clusters"`
	}
	if !getJSON(baseURL+"/clusters?k=5&tau=0.75", &clusters) {
		fmt.Println("FAILED: Clusters")
		os.Exit(1)
	}
	for _, c := range clusters.Clusters {
		fmt.Printf("  %v n=%d avg=%.1f\n", c.Codes, c.Count, c.AvgCitations)
	}
	fmt.Println("PASSED: Clusters")

	fmt.Println("3. Rejecting bad parameters...")
	resp, err := http.Get(baseURL + "/graph?tau=2")
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		fmt.Println("FAILED: expected 400 for tau=2")
		os.Exit(1)
	}
	resp.Body.Close()
	fmt.Println("PASSED: Validation")
}

func waitHealthy(baseURL string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return false
}

func getJSON(url string, out interface{}) bool {
	resp, err := http.Get(url)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(body))
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		fmt.Printf("Error decoding response: %v\n", err)
		return false
	}
	return true
}
