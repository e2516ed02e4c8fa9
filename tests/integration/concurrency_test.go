package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentIntake verifies that concurrent submissions all persist and
// all reach the subscribed endpoint, with sync passes serialized behind one
// another.
func TestConcurrentIntake(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	rcv := newReceiver()
	defer rcv.server.Close()

	token := app.login(t)
	app.registerWebhook(t, token, rcv.server.URL, true, true)

	const n = 20
	var wg sync.WaitGroup
	codes := make(chan string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code := fmt.Sprintf("SKU-%03d", i)
			resp, body := app.intake(t, code, "STOCK_IN", "A-01")
			assert.Equal(t, 201, resp.StatusCode)
			data := body["data"].(map[string]interface{})
			assert.NotEmpty(t, data["transaction_id"])
			codes <- code
		}(i)
	}
	wg.Wait()
	close(codes)

	// Every submission was stored and nothing is left pending.
	unsynced, err := app.txRepo.ListUnsynced(context.Background())
	require.NoError(t, err)
	assert.Empty(t, unsynced)

	// Each transaction was delivered at least once.
	seen := make(map[string]int)
	rcv.mu.Lock()
	for _, payload := range rcv.payloads {
		seen[payload["code"].(string)]++
	}
	rcv.mu.Unlock()

	for code := range codes {
		assert.GreaterOrEqual(t, seen[code], 1, "code %s must be delivered", code)
	}
}

// TestConcurrentSyncPasses triggers many manual passes at once; they queue
// behind each other and every call returns a consistent result.
func TestConcurrentSyncPasses(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	rcv := newReceiver()
	defer rcv.server.Close()
	rcv.setFailing(true)

	token := app.login(t)
	app.registerWebhook(t, token, rcv.server.URL, true, true)

	app.intake(t, "SKU-001", "STOCK_IN", "A-01")
	rcv.setFailing(false)

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(app.server.URL+"/api/v1/sync", "application/json", nil)
			assert.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, 200, resp.StatusCode)
		}()
	}
	wg.Wait()

	// Exactly one pass delivered; the rest found nothing pending.
	assert.Equal(t, 1, rcv.count(), "synced transactions are not re-delivered by later passes")

	unsynced, err := app.txRepo.ListUnsynced(context.Background())
	require.NoError(t, err)
	assert.Empty(t, unsynced)
}
