// 指示: miu200521358
// Package metrics は変換処理の計測値を提供する。
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultNamespace = "mu_vmd2vam"
)

// ErrMetricsDisabled は計測無効時の出力要求を表す。
var ErrMetricsDisabled = errors.New("metrics disabled")

// 処理段階名。
const (
	StageDecode      = "decode"
	StageReconstruct = "reconstruct"
	StageRetarget    = "retarget"
	StageSave        = "save"
)

// Manager は変換処理のメトリクスを保持する。
type Manager struct {
	namespace        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	keyframesDecoded   prometheus.Counter
	bonesReconstructed prometheus.Counter
	framesProduced     prometheus.Counter
	stepsEmitted       *prometheus.CounterVec
	lookupSkipped      *prometheus.CounterVec
	stageDuration      *prometheus.HistogramVec
	recordedLength     prometheus.Gauge
}

// NewManager はManagerを生成する。レジストリ未指定時は専用レジストリを使う。
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	if !m.enabled {
		return m
	}

	factory := promauto.With(m.registry)
	m.keyframesDecoded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "keyframes_decoded_total",
		Help:      "Number of bone keyframes decoded from motion files.",
	})
	m.bonesReconstructed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "bones_reconstructed_total",
		Help:      "Number of bones with a reconstructed timeline.",
	})
	m.framesProduced = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "frames_produced_total",
		Help:      "Number of dense frames produced by reconstruction.",
	})
	m.stepsEmitted = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "steps_emitted_total",
		Help:      "Number of animation steps emitted per bone.",
	}, []string{"bone"})
	m.lookupSkipped = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "lookup_skipped_total",
		Help:      "Number of recoverable lookup failures by reason.",
	}, []string{"reason"})
	m.stageDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of each conversion stage.",
		Buckets:   m.histogramBuckets,
	}, []string{"stage"})
	m.recordedLength = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "recorded_length_seconds",
		Help:      "Recorded length written to the last scene.",
	})
	return m
}

// Enabled は計測が有効か判定する。
func (m *Manager) Enabled() bool {
	return m != nil && m.enabled
}

// Registry は登録先レジストリを返す。
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordKeyframesDecoded は読込キーフレーム数を加算する。
func (m *Manager) RecordKeyframesDecoded(count int) {
	if !m.Enabled() {
		return
	}
	m.keyframesDecoded.Add(float64(count))
}

// RecordBoneReconstructed は再構築したボーンとフレーム数を加算する。
func (m *Manager) RecordBoneReconstructed(frames int) {
	if !m.Enabled() {
		return
	}
	m.bonesReconstructed.Inc()
	m.framesProduced.Add(float64(frames))
}

// RecordStepsEmitted はボーンごとの出力ステップ数を加算する。
func (m *Manager) RecordStepsEmitted(bone string, count int) {
	if !m.Enabled() {
		return
	}
	m.stepsEmitted.WithLabelValues(bone).Add(float64(count))
}

// RecordLookupSkipped は回復可能な参照失敗を加算する。
func (m *Manager) RecordLookupSkipped(reason string) {
	if !m.Enabled() {
		return
	}
	m.lookupSkipped.WithLabelValues(reason).Inc()
}

// ObserveStage は処理段階の所要時間を記録する。
func (m *Manager) ObserveStage(stage string, duration time.Duration) {
	if !m.Enabled() {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// SetRecordedLength は記録長を設定する。
func (m *Manager) SetRecordedLength(seconds float64) {
	if !m.Enabled() {
		return
	}
	m.recordedLength.Set(seconds)
}

// WriteTextfile はnode_exporterのtextfile形式でメトリクスを書き出す。
func (m *Manager) WriteTextfile(path string) error {
	if !m.Enabled() {
		return ErrMetricsDisabled
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("メトリクス書き出し失敗: %w", err)
	}
	return nil
}
