package networkdetect

import (
	"log"
	"math"
	"strings"
	"time"

	"github.com/0xVaibhav11/solana-unity/config"
	"github.com/0xVaibhav11/solana-unity/notify"
	"github.com/0xVaibhav11/solana-unity/utils"
	"github.com/go-ping/ping"
)

const (
	latencyWindow    = 300
	latencyThreshold = int64(20 * 1000 * 1000)
	notifyInterval   = int64(5 * 60)
)

// NetworkDetector pings one rpc node continuously and raises a notification
// when the rolling average latency stays above the threshold.
type NetworkDetector struct {
	peer     string
	ttl      []int64
	avg      []int64
	pinger   *ping.Pinger
	logger   *log.Logger
	notifier *notify.Notifier
}

// hostFromNode strips the scheme and port off an rpc url.
func hostFromNode(node string) string {
	address := node
	if index := strings.Index(address, "://"); index >= 0 {
		address = address[index+3:]
	}
	if index := strings.LastIndex(address, ":"); index >= 0 {
		address = address[:index]
	}
	return address
}

func NewNetworkDetector(node string, notifier *notify.Notifier) *NetworkDetector {
	logger := utils.NewLog(config.LogPath, config.NetworkLog)
	nd := &NetworkDetector{
		peer:     hostFromNode(node),
		ttl:      make([]int64, 0),
		logger:   logger,
		notifier: notifier,
	}
	return nd
}

// DetectPeers pings each node and returns the closest one with its average
// round trip in nanoseconds.
func DetectPeers(peers []string) (string, int64) {
	if len(peers) == 0 {
		return "", math.MaxInt64
	}
	detect := func(peer string) int64 {
		pinger, err := ping.NewPinger(hostFromNode(peer))
		if err != nil {
			return math.MaxInt64
		}
		pinger.Count = 3
		pinger.Timeout = time.Second * 5
		if err := pinger.Run(); err != nil {
			return math.MaxInt64
		}
		stats := pinger.Statistics()
		return stats.AvgRtt.Nanoseconds()
	}
	minttl := int64(math.MaxInt64)
	index := 0
	for i, peer := range peers {
		ttl := detect(peer)
		if ttl < minttl {
			minttl = ttl
			index = i
		}
	}
	return peers[index], minttl
}

func (nd *NetworkDetector) ping() {
	pinger, err := ping.NewPinger(nd.peer)
	if err != nil {
		nd.logger.Printf("pinger err: %s", err.Error())
		return
	}
	nd.pinger = pinger
	notifyTime := time.Now().Unix()
	pinger.OnRecv = func(pkt *ping.Packet) {
		nd.ttl = append(nd.ttl, pkt.Rtt.Nanoseconds())
		sum := int64(0)
		for _, x := range nd.ttl {
			sum += x
		}
		avg := sum / int64(len(nd.ttl))
		nd.avg = append(nd.avg, avg)
		if len(nd.ttl) > latencyWindow {
			nd.ttl = nd.ttl[len(nd.ttl)-latencyWindow:]
		}
		if len(nd.avg) > latencyWindow {
			nd.avg = nd.avg[len(nd.avg)-latencyWindow:]
		}
		isLow := false
		for _, avgx := range nd.avg {
			if avgx < latencyThreshold {
				isLow = true
			}
		}
		now := time.Now().Unix()
		nd.logger.Printf("ping ttl: %d", avg/1000000)
		if !isLow {
			nd.logger.Printf("network latency is too large")
			if now-notifyTime > notifyInterval {
				nd.notifier.Text("rpc node network ttl: %d;\ntime: %s;",
					nd.avg[len(nd.avg)-1]/1000000, time.Now().Format("2006-01-02 15:04:05"))
				notifyTime = now
			}
		}
	}
	pinger.Run()
}

func (nd *NetworkDetector) Start() {
	go nd.ping()
}

func (nd *NetworkDetector) Stop() {
	if nd.pinger != nil {
		nd.pinger.Stop()
	}
}
