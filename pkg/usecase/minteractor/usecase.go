// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_vmd2vam/pkg/shared/logging"
	"github.com/miu200521358/mu_vmd2vam/pkg/shared/metrics"
	"github.com/miu200521358/mu_vmd2vam/pkg/usecase/port/moutput"
)

// Vmd2VamUsecaseDeps はVMD変換ユースケースの依存を表す。
type Vmd2VamUsecaseDeps struct {
	MotionReader    moutput.IMotionReader
	SceneRepository moutput.ISceneRepository
	TimelineWriter  moutput.ITimelineWriter
	Metrics         *metrics.Manager
}

// Vmd2VamUsecase はVMDモーションをVaMシーンへ変換する処理をまとめたユースケースを表す。
type Vmd2VamUsecase struct {
	motionReader    moutput.IMotionReader
	sceneRepository moutput.ISceneRepository
	timelineWriter  moutput.ITimelineWriter
	metrics         *metrics.Manager
}

// NewVmd2VamUsecase はVMD変換ユースケースを生成する。
func NewVmd2VamUsecase(deps Vmd2VamUsecaseDeps) *Vmd2VamUsecase {
	return &Vmd2VamUsecase{
		motionReader:    deps.MotionReader,
		sceneRepository: deps.SceneRepository,
		timelineWriter:  deps.TimelineWriter,
		metrics:         deps.Metrics,
	}
}

// logReconstructDebug は再構築のデバッグログを出力する。
func logReconstructDebug(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}

// logReconstructWarn は再構築の警告ログを出力する。
func logReconstructWarn(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn(format, params...)
}

// logRetargetDebug はリターゲットのデバッグログを出力する。
func logRetargetDebug(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}
