// 指示: miu200521358
package minteractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/miu200521358/mu_vmd2vam/pkg/adapter/io_motion/vmd"
	"github.com/miu200521358/mu_vmd2vam/pkg/adapter/io_scene/vam"
	"github.com/miu200521358/mu_vmd2vam/pkg/adapter/io_timeline"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/merrors"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/mmath"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/rig"
	"github.com/miu200521358/mu_vmd2vam/pkg/shared/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tidwall/gjson"
	"gonum.org/v1/gonum/spatial/r3"
)

// usecaseTestScene は変換テスト用のシーン。
const usecaseTestScene = `{
   "atoms" : [
      {
         "id" : "CoreControl",
         "storables" : [
            { "id" : "MotionAnimationMaster", "recordedLength" : "0" }
         ]
      },
      {
         "id" : "Person",
         "storables" : [
            {
               "id" : "hipControl",
               "position" : { "x" : "0", "y" : "1", "z" : "0" },
               "rotation" : { "x" : "0", "y" : "0", "z" : "0", "w" : "1" }
            },
            {
               "id" : "headControl",
               "position" : { "x" : "0", "y" : "1.6", "z" : "0" },
               "rotation" : { "x" : "0", "y" : "0", "z" : "0", "w" : "1" }
            }
         ]
      }
   ]
}`

type progressRecorder struct {
	events []ConvertProgressEventType
}

func (r *progressRecorder) ReportConvertProgress(event ConvertProgressEvent) {
	r.events = append(r.events, event.Type)
}

// writeUsecaseTestInputs はテスト用のVMDとシーンを書き出す。
func writeUsecaseTestInputs(t *testing.T, dir string, scene string) (string, string) {
	t.Helper()
	motion := model.NewMotion("テスト")
	motion.BoneTracks.Append("センター", newTestKeyframe(0, r3.Vec{}, mmath.NewQuaternion()))
	motion.BoneTracks.Append("頭", newTestKeyframe(0, r3.Vec{}, mmath.NewQuaternionFromAxisAngle(mmath.UNIT_X_VEC3, 0.2)))
	motion.BoneTracks.Append("センター", newTestKeyframe(30, r3.Vec{X: 1, Y: 2, Z: 3}, mmath.NewQuaternion()))
	motion.BoneTracks.Append("グルーブ", newTestKeyframe(0, r3.Vec{}, mmath.NewQuaternion()))

	motionPath := filepath.Join(dir, "dance.vmd")
	if err := vmd.NewVmdRepository().Save(motionPath, motion); err != nil {
		t.Fatalf("save vmd failed: %v", err)
	}
	scenePath := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(scenePath, []byte(scene), 0o644); err != nil {
		t.Fatalf("write scene failed: %v", err)
	}
	return motionPath, scenePath
}

func newTestUsecase(manager *metrics.Manager) *Vmd2VamUsecase {
	return NewVmd2VamUsecase(Vmd2VamUsecaseDeps{
		MotionReader:    vmd.NewVmdRepository(),
		SceneRepository: vam.NewSceneRepository(vam.DefaultIndent),
		TimelineWriter:  io_timeline.NewTimelineWriter(),
		Metrics:         manager,
	})
}

func TestVmd2VamUsecaseConvert(t *testing.T) {
	tempDir := t.TempDir()
	motionPath, scenePath := writeUsecaseTestInputs(t, tempDir, usecaseTestScene)
	timelinePath := filepath.Join(tempDir, "timeline.arrow")
	manager := metrics.NewManager(metrics.WithRegistry(prometheus.NewRegistry()))
	recorder := &progressRecorder{}

	result, err := newTestUsecase(manager).Convert(context.Background(), ConvertRequest{
		MotionPath:       motionPath,
		ScenePath:        scenePath,
		TimelinePath:     timelinePath,
		ProgressReporter: recorder,
	})
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	wantPath := filepath.Join(tempDir, "scene_dance.json")
	if result.OutputPath != wantPath {
		t.Fatalf("default output path mismatch: got=%s want=%s", result.OutputPath, wantPath)
	}
	if result.RunID == "" {
		t.Fatalf("run id should be set")
	}
	if result.Variant != rig.VariantDirect {
		t.Fatalf("variant mismatch: %s", result.Variant)
	}
	if result.BoneCount != 2 {
		t.Fatalf("bone count mismatch: got=%d want=2", result.BoneCount)
	}
	// hip: 初期 + 31フレーム、head: 初期 + 1フレーム + 終端
	if result.StepCount != 35 {
		t.Fatalf("step count mismatch: got=%d want=35", result.StepCount)
	}
	// headの親neckはキーフレームを持たない。
	if result.Warnings[model.WarningMissingDependency] != 1 {
		t.Fatalf("missing neck should be reported once: %v", result.Warnings)
	}

	saved, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("output not found: %v", err)
	}
	if got := gjson.GetBytes(saved, `atoms.1.storables.#(id=="hipAnimation").steps.#`).Int(); got != 32 {
		t.Fatalf("hip step count in scene mismatch: %d", got)
	}
	if got := gjson.GetBytes(saved, `atoms.1.storables.#(id=="headAnimation").steps.2.position`); got.Exists() {
		t.Fatalf("terminating step should not carry a position: %s", got.Raw)
	}
	if got := gjson.GetBytes(saved, `atoms.0.storables.0.recordedLength`).String(); got != "2.0" {
		t.Fatalf("recorded length mismatch: %s", got)
	}
	original, err := os.ReadFile(scenePath)
	if err != nil {
		t.Fatalf("read scene failed: %v", err)
	}
	if string(original) != usecaseTestScene {
		t.Fatalf("input scene should not be modified")
	}

	file, err := os.Open(timelinePath)
	if err != nil {
		t.Fatalf("timeline not found: %v", err)
	}
	defer file.Close()
	reader, err := ipc.NewReader(file)
	if err != nil {
		t.Fatalf("timeline reader failed: %v", err)
	}
	defer reader.Release()
	rows := int64(0)
	for reader.Next() {
		rows += reader.Record().NumRows()
	}
	if rows != 32 {
		t.Fatalf("timeline rows mismatch: got=%d want=32", rows)
	}

	wantEvents := []ConvertProgressEventType{
		ConvertProgressEventTypeInputValidated,
		ConvertProgressEventTypeMotionLoaded,
		ConvertProgressEventTypeVariantSelected,
		ConvertProgressEventTypeReconstructed,
		ConvertProgressEventTypeTimelineWritten,
		ConvertProgressEventTypeSceneLoaded,
		ConvertProgressEventTypeRetargeted,
		ConvertProgressEventTypeSaved,
	}
	if len(recorder.events) != len(wantEvents) {
		t.Fatalf("progress events mismatch: %v", recorder.events)
	}
	for i, event := range wantEvents {
		if recorder.events[i] != event {
			t.Fatalf("progress event %d mismatch: got=%s want=%s", i, recorder.events[i], event)
		}
	}
}

func TestVmd2VamUsecaseConvertLeavesNoOutputOnMismatch(t *testing.T) {
	tempDir := t.TempDir()
	scene := `{"atoms":[{"id":"CoreControl","storables":[{"id":"MotionAnimationMaster"}]},{"id":"Person","storables":[{"id":"hipControl","position":{"x":"0","y":"1","z":"0"}}]}]}`
	motionPath, scenePath := writeUsecaseTestInputs(t, tempDir, scene)
	outPath := filepath.Join(tempDir, "out.json")

	_, err := newTestUsecase(nil).Convert(context.Background(), ConvertRequest{
		MotionPath: motionPath,
		ScenePath:  scenePath,
		OutputPath: outPath,
	})
	if !merrors.IsDestinationMismatchError(err) {
		t.Fatalf("expected destination mismatch, got %v", err)
	}
	if _, statErr := os.Stat(outPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("output should not be written: %v", statErr)
	}
}

func TestVmd2VamUsecaseConvertMissingAtom(t *testing.T) {
	tempDir := t.TempDir()
	motionPath, scenePath := writeUsecaseTestInputs(t, tempDir, usecaseTestScene)

	_, err := newTestUsecase(nil).Convert(context.Background(), ConvertRequest{
		MotionPath: motionPath,
		ScenePath:  scenePath,
		AtomName:   "Dancer",
	})
	if !merrors.IsDestinationMismatchError(err) {
		t.Fatalf("expected destination mismatch, got %v", err)
	}
}

func TestVmd2VamUsecaseConvertRejectsBadOutput(t *testing.T) {
	uc := newTestUsecase(nil)
	if _, err := uc.Convert(context.Background(), ConvertRequest{
		MotionPath: "dance.vmd",
		ScenePath:  "scene.json",
		OutputPath: "scene.vmd",
	}); err == nil {
		t.Fatalf("expected error for non-json output")
	}
	if _, err := uc.Convert(context.Background(), ConvertRequest{
		MotionPath: "dance.vmd",
		ScenePath:  "scene.json",
		OutputPath: "scene.json",
	}); err == nil {
		t.Fatalf("expected error for overwriting the input scene")
	}
}

func TestVmd2VamUsecaseConvertHonorsCancel(t *testing.T) {
	tempDir := t.TempDir()
	motionPath, scenePath := writeUsecaseTestInputs(t, tempDir, usecaseTestScene)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestUsecase(nil).Convert(ctx, ConvertRequest{MotionPath: motionPath, ScenePath: scenePath})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(tempDir, "scene_dance.json")); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("output should not be written after cancel: %v", statErr)
	}
}

func TestBuildDefaultOutputPath(t *testing.T) {
	got := BuildDefaultOutputPath(filepath.Join("motions", "dance.vmd"), filepath.Join("scenes", "stage.json"))
	want := filepath.Join("scenes", "stage_dance.json")
	if got != want {
		t.Fatalf("default output path mismatch: got=%s want=%s", got, want)
	}
	if BuildDefaultOutputPath("", "stage.json") != "" {
		t.Fatalf("empty motion path should produce empty output path")
	}
}

func TestVmd2VamUsecaseInspect(t *testing.T) {
	tempDir := t.TempDir()
	motionPath, _ := writeUsecaseTestInputs(t, tempDir, usecaseTestScene)

	result, err := newTestUsecase(nil).Inspect(motionPath, nil)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if result.ModelName != "テスト" || result.Keyframes != 4 {
		t.Fatalf("inspect summary mismatch: %+v", result)
	}
	if len(result.Bones) != 3 {
		t.Fatalf("inspect bone count mismatch: %d", len(result.Bones))
	}
	if !result.Bones[0].Mapped || result.Bones[0].Label != "Center" || result.Bones[0].LastFrame != 30 {
		t.Fatalf("first inspected bone mismatch: %+v", result.Bones[0])
	}
	last := result.Bones[len(result.Bones)-1]
	if last.Mapped {
		t.Fatalf("unmapped bones should be listed last: %+v", last)
	}
}
