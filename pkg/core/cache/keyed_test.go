package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedIsolatesKeys(t *testing.T) {
	k := NewKeyed[string](time.Minute)
	var calls int32
	refreshFor := func(v string) func(context.Context) (string, error) {
		return func(context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			return v, nil
		}
	}

	a, err := k.GetOrRefresh(context.Background(), "a", refreshFor("payload-a"))
	require.NoError(t, err)
	b, err := k.GetOrRefresh(context.Background(), "b", refreshFor("payload-b"))
	require.NoError(t, err)

	assert.Equal(t, "payload-a", a)
	assert.Equal(t, "payload-b", b)
	assert.EqualValues(t, 2, calls, "each key refreshes independently")

	// A fresh key never re-fetches.
	_, err = k.GetOrRefresh(context.Background(), "a", refreshFor("ignored"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls)
}

func TestKeyedServesStalePerKey(t *testing.T) {
	k := NewKeyed[int](10 * time.Millisecond)
	k.Set("cik", 7)
	time.Sleep(20 * time.Millisecond)

	v, err := k.GetOrRefresh(context.Background(), "cik", func(context.Context) (int, error) {
		return 0, errors.New("browse page down")
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
