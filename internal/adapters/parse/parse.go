package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jclulow/junk-tempexporter/internal/domain"
)

// envelope is the minimal shape every SDR log line must carry; the model
// field selects the device-specific decoder.
type envelope struct {
	Model string `json:"model"`
}

type decodeFunc func(line []byte) (*domain.SensorReading, error)

// decoders maps the model discriminator to a full decoder. Adding support
// for a new device family means adding one entry here.
var decoders = map[string]decodeFunc{
	"Acurite-Tower": decodeAcuriteTower,
}

// Record decodes one complete log line. It returns (nil, nil) for device
// models we do not know how to handle, and an error only when a line that
// should decode does not. Callers drop the line in both cases; the error is
// for logging, never for aborting the stream.
func Record(line []byte) (*domain.SensorReading, error) {
	var env envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Model == "" {
		return nil, fmt.Errorf("decode envelope: missing model field")
	}

	decode, ok := decoders[env.Model]
	if !ok {
		return nil, nil
	}
	return decode(line)
}

// decodeAcuriteTower decodes through pointer fields so an absent field reads
// as nil rather than a zero value. A report missing any field is a decode
// error; it must never reach the cache under a zero-valued id.
func decodeAcuriteTower(line []byte) (*domain.SensorReading, error) {
	var w struct {
		Time         *string  `json:"time"`
		Model        *string  `json:"model"`
		DeviceID     *int64   `json:"id"`
		Channel      *string  `json:"channel"`
		BatteryOK    *int64   `json:"battery_ok"`
		TemperatureC *float64 `json:"temperature_C"`
		Humidity     *float64 `json:"humidity"`
		Integrity    *string  `json:"mic"`
	}
	if err := json.Unmarshal(line, &w); err != nil {
		return nil, fmt.Errorf("decode Acurite-Tower record: %w", err)
	}

	var missing []string
	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"time", w.Time != nil},
		{"model", w.Model != nil},
		{"id", w.DeviceID != nil},
		{"channel", w.Channel != nil},
		{"battery_ok", w.BatteryOK != nil},
		{"temperature_C", w.TemperatureC != nil},
		{"humidity", w.Humidity != nil},
		{"mic", w.Integrity != nil},
	} {
		if !f.ok {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("decode Acurite-Tower record: missing field %s",
			strings.Join(missing, ", "))
	}

	return &domain.SensorReading{
		Time:         *w.Time,
		Model:        *w.Model,
		DeviceID:     *w.DeviceID,
		Channel:      *w.Channel,
		BatteryOK:    *w.BatteryOK,
		TemperatureC: *w.TemperatureC,
		Humidity:     *w.Humidity,
		Integrity:    *w.Integrity,
	}, nil
}
