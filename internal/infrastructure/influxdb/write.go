package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/mamaeo/pandora-mqtt/internal/codec"
)

// measurementSensorUpdate is the measurement holding controller readings.
const measurementSensorUpdate = "sensor_update"

// WriteSensorUpdate records a decoded UPDATE frame.
//
// The point is tagged with the topic it arrived on and timestamped with
// the frame's origin. Controllers without a clock send origin 0; those
// points are stamped with the arrival time instead.
//
// The write is non-blocking; data is batched and sent asynchronously.
func (c *Client) WriteSensorUpdate(topic string, u codec.Update) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(sensorPoint(topic, u, time.Now()))
}

// sensorPoint builds the point for an update. now is used when the frame
// carries no origin.
func sensorPoint(topic string, u codec.Update, now time.Time) *write.Point {
	ts := u.Origin
	if ts.IsZero() || ts.Unix() <= 0 {
		ts = now
	}

	return write.NewPoint(
		measurementSensorUpdate,
		map[string]string{
			"topic": topic,
		},
		map[string]interface{}{
			"dryness":     int64(u.Dryness),
			"brightness":  int64(u.Brightness),
			"humidity":    float64(u.Humidity),
			"temperature": float64(u.Temperature),
			"capacity":    u.Capacity,
		},
		ts,
	)
}
