package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/0xVaibhav11/solana-unity/bridge/app"
	"github.com/0xVaibhav11/solana-unity/config"
	"github.com/0xVaibhav11/solana-unity/networkdetect"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	go shutdown(cancel, quit)

	if len(os.Args) != 2 {
		panic("args is invalid")
	}
	workSpace := os.Args[1]
	os.Chdir(workSpace)

	infoJson, err := os.ReadFile(config.ConfigFile)
	if err != nil {
		panic(err)
	}
	var cfg config.Config
	err = json.Unmarshal(infoJson, &cfg)
	if err != nil {
		panic(err)
	}

	cfg.WorkSpace = workSpace
	workspace, _ := os.Getwd()
	fmt.Printf("work space: %s\n", workspace)

	//
	oldNodes := cfg.Nodes
	usableNodes := make([]*config.Node, 0)
	for _, node := range oldNodes {
		if node.Usable {
			usableNodes = append(usableNodes, node)
		}
	}
	cfg.Nodes = usableNodes

	oldTransactionNodes := cfg.TransactionNodes
	usableTransactionNodes := make([]*config.Node, 0)
	for _, node := range oldTransactionNodes {
		if node.Usable {
			usableTransactionNodes = append(usableTransactionNodes, node)
		}
	}
	cfg.TransactionNodes = usableTransactionNodes

	// the first node serves the queries, so put the closest one there
	if cfg.NetStatus && len(cfg.Nodes) > 1 {
		peers := make([]string, 0, len(cfg.Nodes))
		for _, node := range cfg.Nodes {
			peers = append(peers, node.Rpc)
		}
		best, ttl := networkdetect.DetectPeers(peers)
		fmt.Printf("closest node: %s, ttl: %d ms\n", best, ttl/1000000)
		for i, node := range cfg.Nodes {
			if node.Rpc == best {
				cfg.Nodes[0], cfg.Nodes[i] = cfg.Nodes[i], cfg.Nodes[0]
				break
			}
		}
	}

	//
	t := time.Now()
	t_str := t.Format("2006-01-02")
	dir := fmt.Sprintf("./%s_log/", t_str)
	os.Mkdir(dir, os.ModePerm)
	config.LogPath = dir

	b := app.NewBridge(ctx, &cfg)
	b.Service()
}

func shutdown(cancel context.CancelFunc, quit <-chan os.Signal) {
	osCall := <-quit
	fmt.Printf("System call: %v, bridge is shutting down......\n", osCall)
	cancel()
}
