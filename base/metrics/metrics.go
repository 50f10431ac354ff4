/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/x-xyz/nfttransfer/base/env"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// Option is functional parameter for metrics option
type Option func(*opt)

type opt struct {
	// default: true
	withPodName bool
}

// WithoutPodName drops the pod tag, use it for metrics that don't need to be grouped by pod
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// New creates a metric client with package name as prefix
func New(pkgName string, options ...Option) Service {
	o := opt{
		withPodName: true,
	}
	for _, option := range options {
		option(&o)
	}

	// using host removes all tags associated with host
	// ref: https://docs.datadoghq.com/developers/dogstatsd/data_types/#host-tag-key
	ddTags := []string{"host:"}
	if o.withPodName {
		ddTags = append(ddTags, "pod:"+env.PodName())
	}
	ddTags = append(ddTags,
		"env:"+viper.GetString("env_name"),
		"app:"+viper.GetString("app_name"),
	)

	return &Metrics{
		pkgName: pkgName,
		tags:    ddTags,
	}
}

// Metrics prefixes every key with the package name and forwards to the shared statsd clients
type Metrics struct {
	pkgName string
	tags    []string
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + `.` + key
}

// recoverPanic keeps a bad tag list from taking the caller down
func (mt *Metrics) recoverPanic(key string, tags []string) {
	if err := recover(); err != nil {
		bump(func(c statsCli) error {
			return c.Count("metrics.panic", 1, []string{"key:" + mt.key(key) + "#" + strings.Join(tags, "#")}, 1)
		}, "metrics.panic", 1)
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverPanic(key, tags)
	t := append(append([]string{}, mt.tags...), parseTag(tags)...)
	bump(func(c statsCli) error { return c.Gauge(mt.key(key), val, t, 1) }, key, val)
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverPanic(key, tags)
	t := append(append([]string{}, mt.tags...), parseTag(tags)...)
	bump(func(c statsCli) error { return c.Count(mt.key(key), int64(val), t, 1) }, key, val)
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverPanic(key, tags)
	t := append(append([]string{}, mt.tags...), parseTag(tags)...)
	bump(func(c statsCli) error { return c.Histogram(mt.key(key), val, t, 1) }, key, val)
}

// BumpTime starts a timer, End() sends the elapsed milliseconds:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: time.Now(),
		key:   mt.key(key),
		tags:  append(append([]string{}, mt.tags...), parseTag(tags)...),
	}
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
}

func (t *timeTracker) End() {
	d := time.Since(t.start)
	dur := float64(d/time.Millisecond) + float64(d%time.Millisecond)*1e-6
	bump(func(c statsCli) error { return c.TimeInMilliseconds(t.key, dur, t.tags, 1) }, t.key, dur)
}
