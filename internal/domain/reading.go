package domain

import (
	"fmt"
	"strings"
)

// SensorReading is the latest decoded report from one physical sensor, as
// written by the SDR logging process. A reading is immutable once decoded;
// newer reports replace it wholesale in the cache.
type SensorReading struct {
	Time         string  `json:"time"`
	Model        string  `json:"model"`
	DeviceID     int64   `json:"id"`
	Channel      string  `json:"channel"`
	BatteryOK    int64   `json:"battery_ok"`
	TemperatureC float64 `json:"temperature_C"`
	Humidity     float64 `json:"humidity"`
	Integrity    string  `json:"mic"`
}

// SensorID builds the canonical cache key for the device that produced this
// reading, e.g. "acurite-tower-00005019-c". The device id is always padded to
// eight digits; downstream consumers key their location mappings on this
// exact format.
func (r *SensorReading) SensorID() string {
	return fmt.Sprintf("%s-%08d-%s",
		strings.ToLower(r.Model), r.DeviceID, strings.ToLower(r.Channel))
}
