// Package influxdb forwards decoded sensor updates to InfluxDB.
//
// It wraps the official influxdb-client-go v2 library. Forwarding is off by
// default; when enabled, every UPDATE frame received on a subscribed topic
// becomes one point in the sensor_update measurement:
//
//	sensor_update,topic=pandora/alice/garden dryness=512i,brightness=1023i,humidity=45.5,temperature=21.25,capacity=true
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    Enabled: true,
//	    URL:     "http://localhost:8086",
//	    Token:   os.Getenv("PANDORA_INFLUXDB_TOKEN"),
//	    Org:     "pandora",
//	    Bucket:  "sensors",
//	}
//
//	client, err := influxdb.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteSensorUpdate(topic, update)
//
// # Error Handling
//
// Writes are non-blocking and batch errors are delivered to the callback
// set with SetOnError. Connection and health check errors are returned
// directly.
package influxdb
