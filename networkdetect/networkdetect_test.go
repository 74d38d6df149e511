package networkdetect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHostFromNode(t *testing.T) {
	require.Equal(t, "solana-api.projectserum.com", hostFromNode("https://solana-api.projectserum.com"))
	require.Equal(t, "127.0.0.1", hostFromNode("http://127.0.0.1:8899"))
	require.Equal(t, "node.example.com", hostFromNode("node.example.com:8899"))
	require.Equal(t, "node.example.com", hostFromNode("node.example.com"))
}

func TestDetectPeers(t *testing.T) {
	peer, ttl := DetectPeers(nil)
	require.Equal(t, "", peer)
	require.Equal(t, int64(math.MaxInt64), ttl)

	// an unreachable peer still comes back as the only candidate
	peer, _ = DetectPeers([]string{"http://127.0.0.1:8899"})
	require.Equal(t, "http://127.0.0.1:8899", peer)
}
