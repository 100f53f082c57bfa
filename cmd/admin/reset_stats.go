package main

import (
	"fmt"
	"net/http"
	"os"
)

func main() {
	baseURL := os.Getenv("HEALER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	resp, err := http.Post(baseURL+"/stats/reset", "application/json", nil)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		panic(fmt.Sprintf("unexpected status: %s", resp.Status))
	}

	fmt.Println("Successfully reset engine statistics at " + baseURL)
}
