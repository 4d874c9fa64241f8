// 指示: miu200521358
package vmd

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/miu200521358/mu_vmd2vam/pkg/domain/merrors"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"golang.org/x/text/encoding/japanese"
)

type testRecord struct {
	name     []byte
	keyframe model.BoneKeyframe
}

// buildVmd はテスト用のVMDバイト列を組み立てる。
func buildVmd(t *testing.T, modelName []byte, records []testRecord) []byte {
	t.Helper()
	buf := bytes.Buffer{}
	signature := make([]byte, signatureFieldLength)
	copy(signature, Signature)
	buf.Write(signature)
	nameField := make([]byte, modelNameLength)
	copy(nameField, modelName)
	buf.Write(nameField)
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(records))); err != nil {
		t.Fatalf("write count failed: %v", err)
	}
	for _, record := range records {
		boneName := make([]byte, boneNameLength)
		copy(boneName, record.name)
		buf.Write(boneName)
		raw := boneRecord{
			FrameNumber:   record.keyframe.FrameNumber,
			Location:      record.keyframe.Location,
			Rotation:      record.keyframe.Rotation,
			Interpolation: record.keyframe.Interpolation,
		}
		if err := binary.Write(&buf, binary.LittleEndian, &raw); err != nil {
			t.Fatalf("write record failed: %v", err)
		}
	}
	return buf.Bytes()
}

func keyframe(frame uint32, seed float32) model.BoneKeyframe {
	kf := model.BoneKeyframe{
		FrameNumber: frame,
		Location:    [3]float32{seed, -seed * 2, seed / 3},
		Rotation:    [4]float32{0.1 * seed, -0.2, 0.3, 0.9},
	}
	for i := range kf.Interpolation {
		kf.Interpolation[i] = int8(i*3 - 90)
	}
	return kf
}

func TestDecodeEncodeRoundTripIsByteIdentical(t *testing.T) {
	data := buildVmd(t, []byte("TestModel"), []testRecord{
		{name: []byte("Center"), keyframe: keyframe(10, 1.5)},
		{name: []byte("Head"), keyframe: keyframe(0, float32(math.Pi))},
		{name: []byte("Center"), keyframe: keyframe(0, -3.25)},
		{name: []byte("LeftArm"), keyframe: keyframe(7, 0)},
		{name: []byte("Head"), keyframe: keyframe(5, 1e-7)},
	})

	motion, err := Decode(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if motion.ModelName != "TestModel" {
		t.Fatalf("model name mismatch: %s", motion.ModelName)
	}
	if motion.BoneTracks.Count("Center") != 2 || motion.BoneTracks.Count("Head") != 2 {
		t.Fatalf("track counts mismatch: %v", motion.BoneTracks.Names())
	}
	if got := motion.BoneTracks.Get("Center")[0].FrameNumber; got != 10 {
		t.Fatalf("insertion order should be kept: got=%d", got)
	}

	out := bytes.Buffer{}
	if err := Encode(&out, motion); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("round trip mismatch: got=%d bytes want=%d bytes", out.Len(), len(data))
	}
	if len(data) != signatureFieldLength+modelNameLength+4+5*(boneNameLength+keyframeRecordLength) {
		t.Fatalf("record layout size mismatch: %d", len(data))
	}
}

func TestDecodeTranslatesJapaneseNames(t *testing.T) {
	sjisName, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte("右足ＩＫ"))
	if err != nil {
		t.Fatalf("encode sjis failed: %v", err)
	}
	modelName, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte("初音ミク"))
	if err != nil {
		t.Fatalf("encode sjis failed: %v", err)
	}
	data := buildVmd(t, modelName, []testRecord{{name: sjisName, keyframe: keyframe(1, 1)}})

	motion, err := Decode(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if motion.ModelName != "初音ミク" {
		t.Fatalf("model name mismatch: %s", motion.ModelName)
	}
	if motion.BoneTracks.Count("RightLegIK") != 1 {
		t.Fatalf("translated name missing: %v", motion.BoneTracks.Names())
	}
}

func TestDecodeToleratesTruncatedDoubleByteName(t *testing.T) {
	full, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte("あいうえおかきく"))
	if err != nil {
		t.Fatalf("encode sjis failed: %v", err)
	}
	// 15バイト目で2バイト文字が切れる。
	data := buildVmd(t, []byte("m"), []testRecord{{name: full[:boneNameLength], keyframe: keyframe(0, 0)}})

	identity := func(name string) string { return name }
	motion, err := Decode(bytes.NewReader(data), identity)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	names := motion.BoneTracks.Names()
	if len(names) != 1 || names[0] != "あいうえおかき" {
		t.Fatalf("truncated char should be dropped: %v", names)
	}
}

func TestDecodeRejectsBadSignature(t *testing.T) {
	data := buildVmd(t, []byte("m"), nil)
	data[0] = 'X'
	_, err := Decode(bytes.NewReader(data), nil)
	if err == nil || !merrors.IsFormatError(err) {
		t.Fatalf("expected FormatError, got=%v", err)
	}
}

func TestDecodeIgnoresSignaturePadding(t *testing.T) {
	data := buildVmd(t, []byte("m"), nil)
	copy(data[len(Signature):signatureFieldLength], []byte("garbage"))
	if _, err := Decode(bytes.NewReader(data), nil); err != nil {
		t.Fatalf("padding after signature should be ignored: %v", err)
	}
}

func TestDecodeRejectsTruncatedStream(t *testing.T) {
	data := buildVmd(t, []byte("m"), []testRecord{
		{name: []byte("Center"), keyframe: keyframe(0, 1)},
		{name: []byte("Center"), keyframe: keyframe(1, 1)},
	})
	for _, cut := range []int{10, signatureFieldLength + 5, signatureFieldLength + modelNameLength + 2, len(data) - 1} {
		motion, err := Decode(bytes.NewReader(data[:cut]), nil)
		if err == nil || !merrors.IsFormatError(err) {
			t.Fatalf("expected FormatError for cut=%d, got=%v", cut, err)
		}
		if motion != nil {
			t.Fatalf("partial result should not be returned for cut=%d", cut)
		}
	}
}

func TestDecodeIgnoresTrailingSections(t *testing.T) {
	data := buildVmd(t, []byte("m"), []testRecord{{name: []byte("Center"), keyframe: keyframe(0, 1)}})
	data = append(data, 0, 0, 0, 0, 1, 2, 3)
	motion, err := Decode(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if motion.BoneTracks.Len() != 1 {
		t.Fatalf("bone count mismatch: %d", motion.BoneTracks.Len())
	}
}

func TestEncodeTruncatesLongNames(t *testing.T) {
	motion := model.NewMotion("ThisModelNameIsLongerThanTwenty")
	motion.BoneTracks.Append("AVeryLongBoneNameIndeed", keyframe(0, 1))
	out := bytes.Buffer{}
	if err := Encode(&out, motion); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(bytes.NewReader(out.Bytes()), func(name string) string { return name })
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.ModelName != "ThisModelNameIsLonge" {
		t.Fatalf("model name should be truncated: %s", decoded.ModelName)
	}
	if decoded.BoneTracks.Count("AVeryLongBoneNa") != 1 {
		t.Fatalf("bone name should be truncated: %v", decoded.BoneTracks.Names())
	}
}
