package billing

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testCatalog = `{
	"products": {
		"subs": [
			{"product_id": "onemonth_freetrial", "title": "Monthly", "price": "4.99", "currency": "USD"}
		],
		"inapp": [
			{"product_id": "normal_purchase", "title": "One-time", "price": "0.99", "currency": "USD"}
		]
	},
	"history": {
		"subs": [
			{"product_id": "onemonth_freetrial", "token": "historical_token"}
		]
	}
}`

// recordingListener collects update events for assertions.
type recordingListener struct {
	mu       sync.Mutex
	updated  [][]Purchase
	failures []string
	done     chan struct{}
}

func newRecordingListener() *recordingListener {
	return &recordingListener{done: make(chan struct{}, 4)}
}

func (l *recordingListener) OnPurchasesUpdated(purchases []Purchase) {
	l.mu.Lock()
	l.updated = append(l.updated, purchases)
	l.mu.Unlock()
	l.done <- struct{}{}
}

func (l *recordingListener) OnPurchasesFailedToUpdate(code int, message string) {
	l.mu.Lock()
	l.failures = append(l.failures, message)
	l.mu.Unlock()
	l.done <- struct{}{}
}

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	assert.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o644))
	return path
}

func TestNewStaticClient_MissingFile(t *testing.T) {
	_, err := NewStaticClient("does-not-exist.json", zap.NewNop())
	assert.Error(t, err)
}

func TestStaticClient_QueryProducts(t *testing.T) {
	client, err := NewStaticClient(writeCatalog(t), zap.NewNop())
	assert.NoError(t, err)

	tests := []struct {
		name     string
		category Category
		ids      []string
		want     int
	}{
		{"Known subscription", CategorySubscription, []string{"onemonth_freetrial"}, 1},
		{"Wrong category", CategoryOneTime, []string{"onemonth_freetrial"}, 0},
		{"Unknown id", CategorySubscription, []string{"nope"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan []ProductMetadata, 1)
			client.QueryProducts(context.Background(), tt.category, tt.ids, func(products []ProductMetadata, err error) {
				assert.NoError(t, err)
				done <- products
			})
			assert.Len(t, <-done, tt.want)
		})
	}
}

func TestStaticClient_QueryPurchaseHistory(t *testing.T) {
	client, err := NewStaticClient(writeCatalog(t), zap.NewNop())
	assert.NoError(t, err)

	done := make(chan []Purchase, 1)
	client.QueryPurchaseHistory(context.Background(), CategorySubscription, func(purchases []Purchase, err error) {
		assert.NoError(t, err)
		done <- purchases
	})

	history := <-done
	assert.Len(t, history, 1)
	assert.Equal(t, "historical_token", history[0].Token)
}

func TestStaticClient_LaunchPurchase(t *testing.T) {
	client, err := NewStaticClient(writeCatalog(t), zap.NewNop())
	assert.NoError(t, err)

	listener := newRecordingListener()
	client.Bind(listener)

	client.LaunchPurchase(context.Background(), PurchaseParams{
		ProductID: "onemonth_freetrial",
		UserID:    "user",
		Category:  CategorySubscription,
	})
	<-listener.done

	listener.mu.Lock()
	defer listener.mu.Unlock()
	assert.Len(t, listener.updated, 1)
	assert.Equal(t, "onemonth_freetrial", listener.updated[0][0].ProductID)
	// Tokens are generated per purchase
	assert.Len(t, listener.updated[0][0].Token, 36)
}

func TestStaticClient_LaunchPurchase_UnknownProduct(t *testing.T) {
	client, err := NewStaticClient(writeCatalog(t), zap.NewNop())
	assert.NoError(t, err)

	listener := newRecordingListener()
	client.Bind(listener)

	client.LaunchPurchase(context.Background(), PurchaseParams{
		ProductID: "missing",
		Category:  CategorySubscription,
	})
	<-listener.done

	listener.mu.Lock()
	defer listener.mu.Unlock()
	assert.Empty(t, listener.updated)
	assert.Len(t, listener.failures, 1)
}
