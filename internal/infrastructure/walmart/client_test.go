package walmart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dishcart/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	pemKey, _ := testPrivateKeyPEM(t)
	signer, err := NewSigner("consumer-1", "1", pemKey)
	require.NoError(t, err)

	return NewClient(signer, ClientConfig{
		SearchURL: serverURL,
		Timeout:   5 * time.Second,
	}, zap.NewNop())
}

func TestSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "chickpeas", r.URL.Query().Get("query"))
		assert.Equal(t, "3", r.URL.Query().Get("numItems"))

		// All four auth headers ride along on every request
		assert.Equal(t, "consumer-1", r.Header.Get("WM_CONSUMER.ID"))
		assert.NotEmpty(t, r.Header.Get("WM_CONSUMER.INTIMESTAMP"))
		assert.Equal(t, "1", r.Header.Get("WM_SEC.KEY_VERSION"))
		assert.NotEmpty(t, r.Header.Get("WM_SEC.AUTH_SIGNATURE"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"query": "chickpeas",
			"totalResults": 2,
			"items": [
				{"itemId": 645632123, "name": "Chickpeas 15oz", "salePrice": 1.48,
				 "thumbnailImage": "https://i5.walmartimages.com/a.jpg", "availableOnline": true},
				{"itemId": "787878787", "name": "Organic Chickpeas", "salePrice": 2.98,
				 "availableOnline": false}
			]
		}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	candidates, err := client.Search(context.Background(), "chickpeas", 3)

	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "645632123", candidates[0].ID)
	assert.Equal(t, "Chickpeas 15oz", candidates[0].Name)
	assert.InDelta(t, 1.48, candidates[0].Price, 0.001)
	assert.Equal(t, "https://i5.walmartimages.com/a.jpg", candidates[0].Thumbnail)
	assert.True(t, candidates[0].Available)

	// itemId arrives as a string here; both encodings occur
	assert.Equal(t, "787878787", candidates[1].ID)
	assert.False(t, candidates[1].Available)
}

func TestSearch_FieldDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [{"itemId": 645632123}]}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	candidates, err := client.Search(context.Background(), "anything", 3)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "unknown", candidates[0].Name)
	assert.Equal(t, 0.0, candidates[0].Price)
	assert.True(t, candidates[0].Available, "availability defaults to true")
}

func TestSearch_LimitCapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [
			{"itemId": 100000001}, {"itemId": 100000002},
			{"itemId": 100000003}, {"itemId": 100000004}
		]}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	candidates, err := client.Search(context.Background(), "rice", 2)

	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestSearch_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	candidates, err := client.Search(context.Background(), "nonexistent", 3)

	require.NoError(t, err, "4xx no-results responses are not errors")
	assert.Empty(t, candidates)
}

func TestSearch_AuthFailure(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := testClient(t, server.URL)
		_, err := client.Search(context.Background(), "chickpeas", 3)

		assert.ErrorIs(t, err, domain.ErrRetailerAuth, "status %d", status)
		server.Close()
	}
}

func TestSearch_ServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.Search(context.Background(), "chickpeas", 3)

	assert.ErrorIs(t, err, domain.ErrRetailerTransient)
}

func TestSearch_TimeoutIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	pemKey, _ := testPrivateKeyPEM(t)
	signer, err := NewSigner("consumer-1", "1", pemKey)
	require.NoError(t, err)

	client := NewClient(signer, ClientConfig{
		SearchURL: server.URL,
		Timeout:   50 * time.Millisecond,
	}, zap.NewNop())

	_, err = client.Search(context.Background(), "chickpeas", 3)
	assert.ErrorIs(t, err, domain.ErrRetailerTransient)
}

func TestSearch_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, "chickpeas", 3)
	assert.Error(t, err)
}

func TestMapSearchItem_Thumbnail(t *testing.T) {
	available := true

	t.Run("prefers thumbnail image", func(t *testing.T) {
		c := mapSearchItem(searchItem{
			ItemID:          "645632123",
			ThumbnailImage:  "thumb.jpg",
			MediumImage:     "medium.jpg",
			AvailableOnline: &available,
		})
		assert.Equal(t, "thumb.jpg", c.Thumbnail)
	})

	t.Run("falls back to medium image", func(t *testing.T) {
		c := mapSearchItem(searchItem{
			ItemID:      "645632123",
			MediumImage: "medium.jpg",
		})
		assert.Equal(t, "medium.jpg", c.Thumbnail)
	})
}

func TestMapSearchItems_PriceRounding(t *testing.T) {
	candidates := mapSearchItems([]searchItem{
		{ItemID: "645632123", Name: "x", SalePrice: 1.4850001},
	}, 3)

	require.Len(t, candidates, 1)
	assert.InDelta(t, 1.49, candidates[0].Price, 0.0001)
}
