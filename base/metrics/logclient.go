package metrics

import (
	"github.com/x-xyz/nfttransfer/base/log"
)

// LogClient prints metrics as debug lines when no dogstatsd agent is configured
type LogClient struct{}

func (lc *LogClient) emit(kind, name string, value interface{}, tags []string) error {
	log.Log().WithFields(log.Fields{
		"metric": name,
		"kind":   kind,
		"value":  value,
		"tags":   tags,
	}).Debug("metric")
	return nil
}

func (lc *LogClient) Gauge(name string, value float64, tags []string, _ float64) error {
	return lc.emit("gauge", name, value, tags)
}

func (lc *LogClient) Count(name string, value int64, tags []string, _ float64) error {
	return lc.emit("count", name, value, tags)
}

func (lc *LogClient) Histogram(name string, value float64, tags []string, _ float64) error {
	return lc.emit("histogram", name, value, tags)
}

func (lc *LogClient) TimeInMilliseconds(name string, value float64, tags []string, _ float64) error {
	return lc.emit("time_ms", name, value, tags)
}
