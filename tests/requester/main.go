package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"
)

const baseURL = "http://localhost:8080/orders/"

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: requester <order_id>")
		os.Exit(1)
	}
	orderID := os.Args[1]

	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(func() { doRequest(orderID) })
		}
		wg.Wait()
		time.Sleep(200 * time.Millisecond)
	}
}

func doRequest(orderID string) {
	path := "tracking"
	if rand.Intn(3) == 0 {
		path = "eta"
	}

	url := baseURL + orderID + "/" + path
	resp, err := http.Get(url)
	if err != nil {
		fmt.Println("request failed:", err)
		return
	}
	fmt.Println("GET", url, "->", resp.Status)
	resp.Body.Close()
}
