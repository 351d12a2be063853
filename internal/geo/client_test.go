package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		switch r.URL.Query().Get("q") {
		case "Paris":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"location":{"name":"Paris","country":"France"}}`))
		case "Nowheresville":
			http.Error(w, `{"error":{"code":1006}}`, http.StatusBadRequest)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewWithBaseURL("test-key", srv.URL, time.Second)
	ctx := context.Background()

	t.Run("resolves country", func(t *testing.T) {
		country, err := c.GetCountry(ctx, "Paris")
		require.NoError(t, err)
		assert.Equal(t, "France", country)
	})

	t.Run("unknown city", func(t *testing.T) {
		_, err := c.GetCountry(ctx, "Nowheresville")
		assert.ErrorIs(t, err, ErrCityNotFound)
	})

	t.Run("server error is a transport error", func(t *testing.T) {
		_, err := c.GetCountry(ctx, "Berlin")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCityNotFound)
	})
}

func TestGetCountryKyivSpelling(t *testing.T) {
	var asked string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		asked = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"location":{"country":"Ukraine"}}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL("test-key", srv.URL, time.Second)
	country, err := c.GetCountry(context.Background(), "Kyiv")
	require.NoError(t, err)
	assert.Equal(t, "Ukraine", country)
	assert.Equal(t, "Kiev", asked, "the upstream API only knows the old transliteration")
}

func TestGetCountryDisabled(t *testing.T) {
	var c *Client
	_, err := c.GetCountry(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrDisabled)

	assert.Nil(t, New("", time.Second))
}
