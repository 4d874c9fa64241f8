// 指示: miu200521358
package minteractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/merrors"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/rig"
	"github.com/miu200521358/mu_vmd2vam/pkg/shared/logging"
	"github.com/miu200521358/mu_vmd2vam/pkg/shared/metrics"
)

const (
	// DefaultAtomName は既定のアニメーション挿入先アトム。
	DefaultAtomName = "Person"
)

// Convert はVMDモーションを再構築し、VaMシーンへ挿入して保存する。
// シーンは全ボーンの変換が成功した後にのみ保存する。
func (uc *Vmd2VamUsecase) Convert(ctx context.Context, request ConvertRequest) (*ConvertResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	outputPath, err := resolveSceneOutputPath(request.MotionPath, request.ScenePath, request.OutputPath)
	if err != nil {
		return nil, err
	}
	atomName := strings.TrimSpace(request.AtomName)
	if atomName == "" {
		atomName = DefaultAtomName
	}
	profile := rig.DefaultProfile()
	if request.Profile != nil {
		profile = *request.Profile
	}
	options := request.Options
	if options == (RetargetOptions{}) {
		options = DefaultRetargetOptions()
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := logging.DefaultLogger().With("run", runID)
	result := &ConvertResult{RunID: runID, OutputPath: outputPath, Warnings: map[string]int{}}
	uc.reportProgress(request.ProgressReporter, ConvertProgressEvent{Type: ConvertProgressEventTypeInputValidated})
	logger.Info("変換開始: motion=%s scene=%s out=%s", request.MotionPath, request.ScenePath, outputPath)

	started := time.Now()
	motion := request.Motion
	if motion == nil {
		motion, err = uc.LoadMotion(request.MotionPath, &profile)
		if err != nil {
			return nil, err
		}
	}
	uc.metrics.RecordKeyframesDecoded(motion.BoneTracks.Len())
	uc.metrics.ObserveStage(metrics.StageDecode, time.Since(started))
	uc.reportProgress(request.ProgressReporter, ConvertProgressEvent{
		Type:      ConvertProgressEventTypeMotionLoaded,
		BoneCount: len(motion.BoneTracks.Names()),
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	variant := rig.SelectVariant(motion.BoneTracks)
	topology, err := rig.NewTopology(variant, profile)
	if err != nil {
		return nil, err
	}
	result.Variant = variant
	uc.reportProgress(request.ProgressReporter, ConvertProgressEvent{Type: ConvertProgressEventTypeVariantSelected})
	logger.Info("脚構成選択: variant=%s", variant)

	started = time.Now()
	timeline, report := Reconstruct(motion.BoneTracks, topology)
	uc.metrics.ObserveStage(metrics.StageReconstruct, time.Since(started))
	for _, bone := range timeline.Bones() {
		boneTimeline, _ := timeline.Get(bone)
		uc.metrics.RecordBoneReconstructed(boneTimeline.Len())
	}
	uc.collectReconstructWarnings(result, report)
	result.BoneCount = timeline.Len()
	uc.reportProgress(request.ProgressReporter, ConvertProgressEvent{
		Type:      ConvertProgressEventTypeReconstructed,
		BoneCount: timeline.Len(),
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if path := strings.TrimSpace(request.TimelinePath); path != "" {
		if uc.timelineWriter == nil {
			return nil, fmt.Errorf("タイムライン出力先が設定されていません")
		}
		if err := uc.timelineWriter.Write(path, timeline); err != nil {
			return nil, err
		}
		uc.reportProgress(request.ProgressReporter, ConvertProgressEvent{Type: ConvertProgressEventTypeTimelineWritten})
		logger.Info("タイムライン出力: %s", path)
	}

	scene, err := uc.LoadScene(request.ScenePath, atomName)
	if err != nil {
		return nil, err
	}
	uc.reportProgress(request.ProgressReporter, ConvertProgressEvent{Type: ConvertProgressEventTypeSceneLoaded})

	started = time.Now()
	retargeted, err := Retarget(timeline, variant, scene, options)
	if err != nil {
		var mismatch *merrors.DestinationMismatchError
		if errors.As(err, &mismatch) {
			logger.Error("変換先シーン不一致: %v", err)
		}
		return nil, err
	}
	for _, animation := range retargeted.Animations {
		if err := scene.AppendAnimation(animation); err != nil {
			return nil, err
		}
		uc.metrics.RecordStepsEmitted(animation.Bone, len(animation.Steps))
	}
	if err := scene.SetRecordedLength(retargeted.RecordedLength); err != nil {
		return nil, err
	}
	uc.metrics.ObserveStage(metrics.StageRetarget, time.Since(started))
	uc.metrics.SetRecordedLength(retargeted.RecordedLength)
	result.StepCount = retargeted.StepCount()
	result.RecordedLength = retargeted.RecordedLength
	uc.reportProgress(request.ProgressReporter, ConvertProgressEvent{
		Type:      ConvertProgressEventTypeRetargeted,
		BoneCount: len(retargeted.Animations),
		StepCount: result.StepCount,
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started = time.Now()
	if err := uc.SaveScene(outputPath, scene); err != nil {
		return nil, err
	}
	uc.metrics.ObserveStage(metrics.StageSave, time.Since(started))
	uc.reportProgress(request.ProgressReporter, ConvertProgressEvent{
		Type:      ConvertProgressEventTypeSaved,
		BoneCount: len(retargeted.Animations),
		StepCount: result.StepCount,
	})
	logger.Info(
		"変換完了: out=%s bones=%d steps=%d length=%v",
		outputPath,
		len(retargeted.Animations),
		result.StepCount,
		result.RecordedLength,
	)
	return result, nil
}

// collectReconstructWarnings は再構築の警告を結果とメトリクスへ反映する。
func (uc *Vmd2VamUsecase) collectReconstructWarnings(result *ConvertResult, report *ReconstructReport) {
	for _, lookupErr := range report.LookupErrors {
		switch lookupErr.Reason {
		case merrors.LookupReasonUnknownBone:
			result.Warnings[model.WarningUnknownBone]++
		case merrors.LookupReasonMissingDependency:
			result.Warnings[model.WarningMissingDependency]++
		}
		uc.metrics.RecordLookupSkipped(string(lookupErr.Reason))
	}
	if report.DuplicateFrames > 0 {
		result.Warnings[model.WarningDuplicateFrame] += report.DuplicateFrames
	}
}

// reportProgress は進捗通知先が設定されていれば通知する。
func (uc *Vmd2VamUsecase) reportProgress(reporter IConvertProgressReporter, event ConvertProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportConvertProgress(event)
}
