package testutil

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// WaitForHTTPReady ждёт пока zone server начнёт отвечать на /debug/zones.
// Используется вместо time.Sleep после запуска Server.Serve в горутине.
func WaitForHTTPReady(addr string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	url := "http://" + addr + "/debug/zones"

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for server at %s: %w", addr, ctx.Err())
		case <-ticker.C:
			resp, err := client.Get(url)
			if err != nil {
				continue
			}
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
	}
}

// FreeAddr возвращает свободный localhost адрес для listener.
func FreeAddr() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("finding free port: %w", err)
	}
	addr := ln.Addr().String()
	if err := ln.Close(); err != nil {
		return "", fmt.Errorf("releasing port: %w", err)
	}
	return addr, nil
}
