// 指示: miu200521358
// Package io_timeline は再構築タイムラインをArrow IPC形式で書き出す。
package io_timeline

import (
	"fmt"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
)

// 列番号。
const (
	columnBone = iota
	columnFrame
	columnPosX
	columnPosY
	columnPosZ
	columnRotX
	columnRotY
	columnRotZ
	columnRotW
	columnRotationOn
)

// TimelineSchema はタイムライン1行(ボーン×フレーム)のスキーマ。
var TimelineSchema = arrow.NewSchema([]arrow.Field{
	{Name: "bone", Type: arrow.BinaryTypes.String},
	{Name: "frame", Type: arrow.PrimitiveTypes.Int32},
	{Name: "pos_x", Type: arrow.PrimitiveTypes.Float64},
	{Name: "pos_y", Type: arrow.PrimitiveTypes.Float64},
	{Name: "pos_z", Type: arrow.PrimitiveTypes.Float64},
	{Name: "rot_x", Type: arrow.PrimitiveTypes.Float64},
	{Name: "rot_y", Type: arrow.PrimitiveTypes.Float64},
	{Name: "rot_z", Type: arrow.PrimitiveTypes.Float64},
	{Name: "rot_w", Type: arrow.PrimitiveTypes.Float64},
	{Name: "rotation_on", Type: arrow.FixedWidthTypes.Boolean},
}, nil)

// TimelineWriter はタイムラインの書き出しを表す。
type TimelineWriter struct {
	pool memory.Allocator
}

// NewTimelineWriter はTimelineWriterを生成する。
func NewTimelineWriter() *TimelineWriter {
	return &TimelineWriter{pool: memory.NewGoAllocator()}
}

// BuildRecord はタイムラインからArrowレコードを生成する。呼び出し側でReleaseする。
func (w *TimelineWriter) BuildRecord(timeline *model.Timeline) arrow.Record {
	builder := array.NewRecordBuilder(w.pool, TimelineSchema)
	defer builder.Release()

	bones := builder.Field(columnBone).(*array.StringBuilder)
	frames := builder.Field(columnFrame).(*array.Int32Builder)
	floats := map[int]*array.Float64Builder{}
	for _, column := range []int{columnPosX, columnPosY, columnPosZ, columnRotX, columnRotY, columnRotZ, columnRotW} {
		floats[column] = builder.Field(column).(*array.Float64Builder)
	}
	rotationOn := builder.Field(columnRotationOn).(*array.BooleanBuilder)

	for _, bone := range timeline.Bones() {
		boneTimeline, _ := timeline.Get(bone)
		for _, frame := range boneTimeline.Frames() {
			state, _ := boneTimeline.At(frame)
			bones.Append(bone)
			frames.Append(int32(frame))
			floats[columnPosX].Append(state.Position.X)
			floats[columnPosY].Append(state.Position.Y)
			floats[columnPosZ].Append(state.Position.Z)
			floats[columnRotX].Append(state.Rotation.V[0])
			floats[columnRotY].Append(state.Rotation.V[1])
			floats[columnRotZ].Append(state.Rotation.V[2])
			floats[columnRotW].Append(state.Rotation.W)
			rotationOn.Append(state.RotationEnabled)
		}
	}
	return builder.NewRecord()
}

// Write はタイムラインをArrow IPCストリームとして保存する。
func (w *TimelineWriter) Write(path string, timeline *model.Timeline) error {
	if timeline == nil {
		return fmt.Errorf("出力対象タイムラインが未設定です")
	}
	record := w.BuildRecord(timeline)
	defer record.Release()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("タイムラインファイルの作成に失敗しました: %w", err)
	}
	writer := ipc.NewWriter(file, ipc.WithSchema(TimelineSchema), ipc.WithAllocator(w.pool))
	if err := writer.Write(record); err != nil {
		_ = writer.Close()
		_ = file.Close()
		return fmt.Errorf("タイムラインの書き込みに失敗しました: %w", err)
	}
	if err := writer.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("タイムラインの書き込みに失敗しました: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("タイムラインファイルのクローズに失敗しました: %w", err)
	}
	return nil
}
