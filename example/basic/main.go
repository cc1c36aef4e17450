package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tempexporter "github.com/jclulow/junk-tempexporter"
)

func main() {
	cfg := &tempexporter.Config{
		Input: tempexporter.InputConfig{
			Path: "/var/sdr/output.json",
		},
		Locations: map[string]string{
			"acurite-tower-00005019-c": "garage-door",
		},
	}
	cfg.ApplyDefaults()

	rt, err := tempexporter.NewRuntime(cfg,
		tempexporter.WithRecordHandler(func(id string, r tempexporter.SensorReading) {
			fmt.Printf("%s: %.1f C, %.0f%% RH, battery_ok=%d\n",
				id, r.TemperatureC, r.Humidity, r.BatteryOK)
		}),
	)
	if err != nil {
		log.Fatalf("runtime: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rt.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
