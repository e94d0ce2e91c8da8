// Package metrics exposes Prometheus collectors for farq.Engine instances:
// a registry of live instruments plus a lock-guarded map of tracked
// objects, one gauge/counter family built from each tracked object on every
// scrape.
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/farqproto/farq/farq"
)

// Source supplies one conversation's metrics snapshot. *farq.Engine
// satisfies this directly via its Conv and Stats methods.
type Source interface {
	Conv() uint32
	Stats() farq.Stats
}

type entry struct {
	src    Source
	labels []string
}

// Collector is a prometheus.Collector tracking zero or more farq
// conversations, each identified by its conv and an optional set of
// caller-supplied label values (e.g. remote address, tunnel name).
type Collector struct {
	mu            sync.Mutex
	tracked       map[uint32]entry
	labelNames    []string
	cwnd          *prometheus.Desc
	ssthresh      *prometheus.Desc
	rtoMillis     *prometheus.Desc
	srttMillis    *prometheus.Desc
	sndUna        *prometheus.Desc
	sndNxt        *prometheus.Desc
	rcvNxt        *prometheus.Desc
	xmitTotal     *prometheus.Desc
	fastackTotal  *prometheus.Desc
	deadLink      *prometheus.Desc
}

// NewCollector builds a Collector. labelNames declares the extra label
// dimensions callers will supply per-conversation via Track; every tracked
// conversation is always labeled with "conv" in addition.
func NewCollector(namespace string, labelNames []string) *Collector {
	names := append([]string{"conv"}, labelNames...)
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, names, nil)
	}
	return &Collector{
		tracked:      make(map[uint32]entry),
		labelNames:   labelNames,
		cwnd:         desc("cwnd", "current congestion window in segments"),
		ssthresh:     desc("ssthresh", "slow-start threshold in segments"),
		rtoMillis:    desc("rto_milliseconds", "current retransmission timeout"),
		srttMillis:   desc("srtt_milliseconds", "smoothed round-trip time"),
		sndUna:       desc("snd_una", "lowest unacknowledged sequence number"),
		sndNxt:       desc("snd_nxt", "next sequence number to assign"),
		rcvNxt:       desc("rcv_nxt", "next expected sequence number"),
		xmitTotal:    desc("xmit_total", "cumulative timeout retransmissions"),
		fastackTotal: desc("fastack_retransmits_total", "cumulative fast retransmits"),
		deadLink:     desc("dead_link", "1 if the link has been latched dead, else 0"),
	}
}

// Track registers src under its Conv(), with labelValues supplied positionally
// for the labelNames given to NewCollector. Calling Track again for the same
// conv replaces the prior registration.
func (c *Collector) Track(src Source, labelValues ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracked[src.Conv()] = entry{src: src, labels: labelValues}
}

// Untrack removes a conversation from future scrapes.
func (c *Collector) Untrack(conv uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tracked, conv)
}

func (c *Collector) Describe(descs chan<- *prometheus.Desc) {
	descs <- c.cwnd
	descs <- c.ssthresh
	descs <- c.rtoMillis
	descs <- c.srttMillis
	descs <- c.sndUna
	descs <- c.sndNxt
	descs <- c.rcvNxt
	descs <- c.xmitTotal
	descs <- c.fastackTotal
	descs <- c.deadLink
}

func (c *Collector) Collect(metrics chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for conv, e := range c.tracked {
		s := e.src.Stats()
		labels := append([]string{convLabel(conv)}, e.labels...)
		metrics <- prometheus.MustNewConstMetric(c.cwnd, prometheus.GaugeValue, float64(s.Cwnd), labels...)
		metrics <- prometheus.MustNewConstMetric(c.ssthresh, prometheus.GaugeValue, float64(s.Ssthresh), labels...)
		metrics <- prometheus.MustNewConstMetric(c.rtoMillis, prometheus.GaugeValue, float64(s.RTOMillis), labels...)
		metrics <- prometheus.MustNewConstMetric(c.srttMillis, prometheus.GaugeValue, float64(s.SRTTMillis), labels...)
		metrics <- prometheus.MustNewConstMetric(c.sndUna, prometheus.GaugeValue, float64(s.SndUna), labels...)
		metrics <- prometheus.MustNewConstMetric(c.sndNxt, prometheus.GaugeValue, float64(s.SndNxt), labels...)
		metrics <- prometheus.MustNewConstMetric(c.rcvNxt, prometheus.GaugeValue, float64(s.RcvNxt), labels...)
		metrics <- prometheus.MustNewConstMetric(c.xmitTotal, prometheus.CounterValue, float64(s.XmitTotal), labels...)
		metrics <- prometheus.MustNewConstMetric(c.fastackTotal, prometheus.CounterValue, float64(s.FastackRetransmits), labels...)
		deadVal := 0.0
		if s.Dead {
			deadVal = 1.0
		}
		metrics <- prometheus.MustNewConstMetric(c.deadLink, prometheus.GaugeValue, deadVal, labels...)
	}
}

func convLabel(conv uint32) string {
	return strconv.FormatUint(uint64(conv), 10)
}
