// Package metricstest 在测试中读取Prometheus指标的当前值
package metricstest

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// CounterValue 读取Counter值
func CounterValue(t testing.TB, counter prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := counter.Write(&m); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return m.GetCounter().GetValue()
}

// CounterVecValue 读取带标签Counter的值
func CounterVecValue(t testing.TB, vec *prometheus.CounterVec, labels prometheus.Labels) float64 {
	t.Helper()
	return CounterValue(t, vec.With(labels))
}

// GaugeVecValue 读取带标签Gauge的值
func GaugeVecValue(t testing.TB, vec *prometheus.GaugeVec, labels prometheus.Labels) float64 {
	t.Helper()
	var m dto.Metric
	if err := vec.With(labels).Write(&m); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return m.GetGauge().GetValue()
}

// GaugeValue 读取Gauge值
func GaugeValue(t testing.TB, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return m.GetGauge().GetValue()
}

// HistogramVecCount 读取带标签Histogram的观测次数
func HistogramVecCount(t testing.TB, vec *prometheus.HistogramVec, labels prometheus.Labels) uint64 {
	t.Helper()
	var m dto.Metric
	if err := vec.With(labels).(prometheus.Histogram).Write(&m); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}
