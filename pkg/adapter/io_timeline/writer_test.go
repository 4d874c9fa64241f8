// 指示: miu200521358
package io_timeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTimelineWriterRoundTrip(t *testing.T) {
	timeline := model.NewTimeline()
	hip := model.NewBoneTimeline(0, model.BoneState{Rotation: mgl64.QuatIdent()})
	hip.Put(1, model.BoneState{Position: r3.Vec{X: 1, Y: 2, Z: 3}, Rotation: mgl64.QuatIdent(), RotationEnabled: true})
	timeline.Set("hip", hip)
	timeline.Set("head", model.NewBoneTimeline(5, model.BoneState{Rotation: mgl64.QuatIdent()}))

	path := filepath.Join(t.TempDir(), "timeline.arrow")
	if err := NewTimelineWriter().Write(path, timeline); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer file.Close()
	reader, err := ipc.NewReader(file)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Release()

	rows := int64(0)
	var lastBone string
	var posY float64
	for reader.Next() {
		record := reader.Record()
		rows += record.NumRows()
		bones := record.Column(columnBone).(*array.String)
		lastBone = bones.Value(int(record.NumRows()) - 1)
		posY = record.Column(columnPosY).(*array.Float64).Value(1)
	}
	if rows != 3 {
		t.Fatalf("row count mismatch: got=%d want=3", rows)
	}
	if lastBone != "head" || posY != 2 {
		t.Fatalf("row content mismatch: bone=%s posY=%v", lastBone, posY)
	}
	if !reader.Schema().Equal(TimelineSchema) {
		t.Fatalf("schema mismatch: %s", reader.Schema())
	}
}
