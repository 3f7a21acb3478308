package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"time"
)

var baseURL = "http://localhost:8080"

func main() {
	if v := os.Getenv("FACTSCREEN_URL"); v != "" {
		baseURL = v
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	fmt.Println("1. Health...")
	var health map[string]interface{}
	if !sendRequest("GET", "/health", nil, &health) || health["status"] != "ok" {
		fail("Health")
	}
	fmt.Println("PASSED: Health")

	fmt.Println("2. Validating statements...")
	var validated struct {
		Results []bool `json:"results"`
	}
	ok := sendRequest("POST", "/validate", map[string]interface{}{
		"statements": []string{"IsA(Socrates, Human).", "Loves(Alice, Bob)", "f(a, )."},
	}, &validated)
	if !ok || !reflect.DeepEqual(validated.Results, []bool{true, false, true}) {
		fail("Validate")
	}
	fmt.Println("PASSED: Validate")

	fmt.Println("3. Finding duplicates...")
	var dupes struct {
		Matches []struct {
			I     int     `json:"i"`
			J     int     `json:"j"`
			Score float64 `json:"score"`
		} `json:"matches"`
		Threshold float64 `json:"threshold"`
	}
	ok = sendRequest("POST", "/duplicates", map[string]interface{}{
		"statements": []string{"A(x, y).", "A(x, y).", "B(z, w)."},
		"threshold":  0.95,
	}, &dupes)
	if !ok || len(dupes.Matches) != 1 || dupes.Matches[0].I != 0 || dupes.Matches[0].J != 1 || dupes.Matches[0].Score != 1 {
		fail("Duplicates")
	}
	ok = sendRequest("POST", "/duplicates", map[string]interface{}{
		"statements": []string{"", "", ""},
		"threshold":  0,
	}, &dupes)
	if !ok || len(dupes.Matches) != 0 {
		fail("Duplicates (empty token sets)")
	}
	fmt.Println("PASSED: Duplicates")

	fmt.Println("4. Screening batch...")
	var report struct {
		RunID      string `json:"run_id"`
		Total      int    `json:"total"`
		ValidCount int    `json:"valid_count"`
	}
	ok = sendRequest("POST", "/screen", map[string]interface{}{
		"statements": []string{"IsA(Socrates, Human).", "NichtIsA(Socrates, Human).", "broken"},
	}, &report)
	if !ok || report.RunID == "" || report.Total != 3 || report.ValidCount != 2 {
		fail("Screen")
	}
	fmt.Println("PASSED: Screen")

	fmt.Println("5. Golden comparison...")
	var golden struct {
		Equal bool `json:"equal"`
	}
	ok = sendRequest("POST", "/golden", map[string]interface{}{
		"statements": []string{"A(x, y).", "A(x, y).", "B(z, w).", "broken"},
	}, &golden)
	if !ok || !golden.Equal {
		fail("Golden")
	}
	fmt.Println("PASSED: Golden")
}

func fail(step string) {
	fmt.Printf("FAILED: %s\n", step)
	os.Exit(1)
}

func sendRequest(method, endpoint string, payload, out interface{}) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}
	fmt.Printf("Response: %s\n", string(respBody))

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			fmt.Printf("Error decoding response: %v\n", err)
			return false
		}
	}
	return true
}
