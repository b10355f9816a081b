package loadbalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobin_Next(t *testing.T) {
	lb := NewRoundRobin([]string{"http://a:8080", "http://b:8080", "http://c:8080"})

	assert.Equal(t, "http://a:8080", lb.Next())
	assert.Equal(t, "http://b:8080", lb.Next())
	assert.Equal(t, "http://c:8080", lb.Next())
	assert.Equal(t, "http://a:8080", lb.Next())
}

func TestRoundRobin_DefaultsWhenEmpty(t *testing.T) {
	lb := NewRoundRobin(nil)
	assert.NotEmpty(t, lb.Next())
}

func TestRoundRobin_GetServers(t *testing.T) {
	servers := []string{"http://a:8080", "http://b:8080"}
	lb := NewRoundRobin(servers)
	assert.Equal(t, servers, lb.GetServers())
}
