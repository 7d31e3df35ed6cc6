// cmd/twc3sim/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/frankenbubble/twc3-modbus/internal/config"
	"github.com/frankenbubble/twc3-modbus/internal/dispatch"
	"github.com/frankenbubble/twc3-modbus/internal/logger"
	"github.com/frankenbubble/twc3-modbus/internal/server"
	"github.com/frankenbubble/twc3-modbus/internal/store"
	"github.com/frankenbubble/twc3-modbus/internal/trace"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "path to config file (required)")
		dryRun  = flag.Bool("dry-run", false, "render and log replies without sending them")
		port    = flag.String("port", "", "serial port override")
		baud    = flag.Int("baud", 0, "baud rate override")
	)
	flag.Parse()

	if *cfgPath == "" {
		fmt.Fprintln(os.Stderr, "usage: twc3sim -config <twc3sim.yaml> [-dry-run] [-port PORT] [-baud N]")
		os.Exit(2)
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// Flag overrides land before validation.
	if *dryRun {
		cfg.Emulator.DryRun = true
	}
	if *port != "" {
		cfg.Emulator.Serial.Port = *port
	}
	if *baud != 0 {
		cfg.Emulator.Serial.BaudRate = *baud
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	e := cfg.Emulator

	// ---- logger ----

	logg, err := logger.New(e.Logging)
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer logg.Close()

	// ---- response files ----

	if err := os.MkdirAll(e.ResponseDir, 0o755); err != nil {
		log.Fatalf("response dir failed: %v", err)
	}

	files := store.New(e.ResponseDir)

	addrs, err := files.Addresses()
	if err != nil {
		log.Fatalf("response dir listing failed: %v", err)
	}
	logg.Infof("serving %d response files from %s: %v", len(addrs), e.ResponseDir, addrs)

	// ---- observers + dispatcher ----

	observers := []dispatch.Observer{trace.NewLogObserver(logg)}

	if e.Trace.Enabled {
		mq, err := trace.NewMQTTObserver(e.Trace, logg)
		if err != nil {
			log.Fatalf("trace sink failed: %v", err)
		}
		defer mq.Close()
		observers = append(observers, mq)
	}

	d, err := dispatch.New(files, dispatch.Config{
		SlaveID:  e.SlaveID,
		DryRun:   e.DryRun,
		Fallback: dispatch.StaticReader{},
		Observer: trace.Multi(observers...),
	})
	if err != nil {
		log.Fatalf("dispatcher build failed: %v", err)
	}

	// ---- server ----

	srv, closeServer, err := server.Build(e, d, logg)
	if err != nil {
		log.Fatalf("server build failed: %v", err)
	}

	mode := "live"
	if e.DryRun {
		mode = "dry-run (replies logged, never sent)"
	}
	logg.Infof("twc3sim on %s at %d baud, slave id %d, mode: %s",
		e.Serial.Port, e.Serial.BaudRate, e.SlaveID, mode)

	// --------------------
	// Run until signal or serve failure
	// --------------------

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	var serveErr error
	select {
	case s := <-sig:
		logg.Infof("signal %v, shutting down", s)
		closeServer()
		serveErr = <-done
	case serveErr = <-done:
		closeServer()
	}

	st := srv.Snapshot()
	logg.Infof("requests=%d replies=%d silent=%d exceptions=%d id_drops=%d crc_errors=%d framing=%d",
		st.Requests, st.Replies, st.Silent, st.Exceptions, st.IDDrops, st.CrcErrors, st.Framing)

	if serveErr != nil {
		logg.Errorf("serve failed: %v", serveErr)
		os.Exit(1)
	}
}
