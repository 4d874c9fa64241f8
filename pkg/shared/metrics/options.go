// 指示: miu200521358
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option はManagerの設定を適用する。
type Option func(*Manager)

// WithNamespace はメトリクス名の名前空間を設定する。
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets は処理時間ヒストグラムの区間を設定する。
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithMetricsEnabled は計測の有効無効を設定する。
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithRegistry は登録先のレジストリを設定する。
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
