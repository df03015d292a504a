package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// Mock identity provider for local development. Any token of the form
// "user:<id>" verifies as that user; everything else is rejected.
func main() {
	http.HandleFunc("/v1/verify", func(w http.ResponseWriter, r *http.Request) {
		// Simulate network latency (10-60ms)
		time.Sleep(time.Duration(10+time.Now().UnixNano()%50) * time.Millisecond)

		var body struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)

			return
		}

		w.Header().Set("Content-Type", "application/json")

		userID, ok := strings.CutPrefix(body.Token, "user:")
		if !ok || userID == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
			log.Printf("[Identity] %s %s - 401 rejected", r.Method, r.URL.Path)

			return
		}

		_ = json.NewEncoder(w).Encode(map[string]string{
			"user_id":  userID,
			"email":    fmt.Sprintf("%s@example.com", userID),
			"username": userID,
		})

		log.Printf("[Identity] %s %s - 200 OK (%s)", r.Method, r.URL.Path, userID)
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[Identity] Health write error: %v", err)
		}
	})

	log.Println("Mock identity provider running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
