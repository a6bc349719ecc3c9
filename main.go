package main

import (
	"flag"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lazharichir/holdem/hands"
	"github.com/lazharichir/holdem/server"
	"github.com/lazharichir/holdem/table"
)

func main() {
	port := flag.String("port", "7777", "port to listen on")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "holdem",
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	rooms := table.NewManager(hands.FullEvaluator{}, logger)
	defer rooms.CloseAll()

	srv := server.NewServer(rooms, logger)

	// a default table so clients have somewhere to sit right away
	room := rooms.CreateRoom("main", table.Rules{
		SeatCount:   6,
		SmallBlind:  50,
		BigBlind:    100,
		TurnTimeout: 30 * time.Second,
	})
	room.RegisterObserver(srv.Dispatcher().HandleEvent)

	if err := srv.Start(*port); err != nil {
		logger.Fatal("server failed", "err", err)
	}
}
