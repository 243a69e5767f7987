package proxy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func host(t *testing.T, p *Pool) string {
	t.Helper()
	u := p.Next()
	require.NotNil(t, u)
	return u.Host
}

func TestPool_Rotation(t *testing.T) {
	pool, err := NewPool([]string{"http://p1:8080", "http://p2:8080", "socks5://p3:1080"})
	require.NoError(t, err)

	assert.Equal(t, "p1:8080", host(t, pool))
	assert.Equal(t, "p2:8080", host(t, pool))
	assert.Equal(t, "p3:1080", host(t, pool))
	assert.Equal(t, "p1:8080", host(t, pool))
}

func TestPool_SkipsFailed(t *testing.T) {
	pool, err := NewPool([]string{"http://p1:8080", "http://p2:8080", "http://p3:8080"})
	require.NoError(t, err)

	pool.Next()
	p2 := pool.Next()
	pool.Next()

	pool.MarkFailed(p2)

	assert.Equal(t, "p1:8080", host(t, pool))
	assert.Equal(t, "p3:8080", host(t, pool))
	assert.Equal(t, "p1:8080", host(t, pool))

	pool.MarkHealthy(p2)
	assert.Equal(t, "p2:8080", host(t, pool))
}

func TestPool_AllFailedStillReturnsProxy(t *testing.T) {
	pool, err := NewPool([]string{"http://p1:8080"})
	require.NoError(t, err)

	pool.MarkFailed(pool.Next())
	assert.Equal(t, "p1:8080", host(t, pool))
}

func TestPool_EmptyProxyFuncReturnsNil(t *testing.T) {
	pool, err := NewPool(nil)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "https://cars.av.by/filter", nil)
	u, err := pool.ProxyFunc()(req)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, 0, pool.Len())
}

func TestPool_ProxyFuncPrefersRequestProxy(t *testing.T) {
	pool, err := NewPool([]string{"http://p1:8080", "http://p2:8080"})
	require.NoError(t, err)

	chosen := pool.Next()
	req, _ := http.NewRequest(http.MethodGet, "https://cars.av.by/filter", nil)
	req = req.WithContext(WithProxy(req.Context(), chosen))

	u, err := pool.ProxyFunc()(req)
	require.NoError(t, err)
	assert.Equal(t, chosen, u)
	assert.Equal(t, chosen, FromContext(req.Context()))
}

func TestNewPool_RejectsInvalid(t *testing.T) {
	_, err := NewPool([]string{"not a proxy"})
	assert.Error(t, err)
}
