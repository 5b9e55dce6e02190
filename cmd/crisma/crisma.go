package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/cyclopcam/logs"
	"github.com/potuvera/crisma/server"
)

func main() {
	parser := argparse.NewParser("crisma", "Parish confirmation course enrollment server")
	hotReloadWWW := parser.Flag("", "hot", &argparse.Options{Help: "Hot reload www instead of embedding into binary", Default: false})
	configFilePath := parser.String("c", "config", &argparse.Options{Help: "Config file path", Default: "crisma.json"})
	port := parser.Int("p", "port", &argparse.Options{Help: "HTTP listen port", Default: 3000})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	cfg, err := server.LoadConfig(*configFilePath)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	s, err := server.NewServer(logger, cfg)
	if err != nil {
		logger.Errorf("Failed to start server: %v", err)
		os.Exit(1)
	}
	s.HotReloadWWW = *hotReloadWWW
	s.ListenForInterruptSignal()
	daemon.SdNotify(false, daemon.SdNotifyReady)
	if err := s.ListenHTTP(fmt.Sprintf(":%v", *port)); err != nil {
		logger.Errorf("%v", err)
	}
}
