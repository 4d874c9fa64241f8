// 指示: miu200521358
package minteractor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/merrors"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/mmath"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/rig"
	"gonum.org/v1/gonum/spatial/r3"
)

// newTestKeyframe はテスト用のキーフレームを生成する。
func newTestKeyframe(frame uint32, location r3.Vec, rotation mgl64.Quat) model.BoneKeyframe {
	return model.BoneKeyframe{
		FrameNumber: frame,
		Location:    [3]float32{float32(location.X), float32(location.Y), float32(location.Z)},
		Rotation: [4]float32{
			float32(rotation.V[0]),
			float32(rotation.V[1]),
			float32(rotation.V[2]),
			float32(rotation.W),
		},
	}
}

// asFloat32Quat はキーフレームと同じ精度へ丸めた回転を返す。
func asFloat32Quat(rotation mgl64.Quat) mgl64.Quat {
	return mmath.NewQuaternionFromFloat32s([4]float32{
		float32(rotation.V[0]),
		float32(rotation.V[1]),
		float32(rotation.V[2]),
		float32(rotation.W),
	})
}

func mustTopology(t *testing.T, variant rig.Variant, profile rig.Profile) *rig.Topology {
	t.Helper()
	topology, err := rig.NewTopology(variant, profile)
	if err != nil {
		t.Fatalf("topology failed: %v", err)
	}
	return topology
}

func mustBoneTimeline(t *testing.T, timeline *model.Timeline, bone string) *model.BoneTimeline {
	t.Helper()
	boneTimeline, ok := timeline.Get(bone)
	if !ok {
		t.Fatalf("timeline for %s is missing", bone)
	}
	return boneTimeline
}

func mustState(t *testing.T, boneTimeline *model.BoneTimeline, frame int) model.BoneState {
	t.Helper()
	state, ok := boneTimeline.At(frame)
	if !ok {
		t.Fatalf("state at frame %d is missing", frame)
	}
	return state
}

func TestReconstructSingleKeyframeKeepsSeedOnly(t *testing.T) {
	tracks := model.NewBoneTracks()
	tracks.Append("Center", newTestKeyframe(10, r3.Vec{X: 1, Y: 2, Z: 3}, mmath.NewQuaternion()))

	timeline, report := Reconstruct(tracks, mustTopology(t, rig.VariantDirect, rig.DefaultProfile()))
	if len(report.LookupErrors) != 0 {
		t.Fatalf("unexpected lookup errors: %v", report.LookupErrors)
	}
	if timeline.Len() != 1 {
		t.Fatalf("timeline bone count mismatch: got=%d want=1", timeline.Len())
	}
	hip := mustBoneTimeline(t, timeline, rig.RootBone)
	if hip.First() != 10 || hip.Len() != 1 {
		t.Fatalf("seed should be stored at its own frame only: first=%d len=%d", hip.First(), hip.Len())
	}
	state := mustState(t, hip, 10)
	if !mmath.NearEqualsVec3(state.Position, r3.Vec{X: 1, Y: 2, Z: 3}, 1e-6) {
		t.Fatalf("seed position mismatch: %v", state.Position)
	}
	if state.RotationEnabled {
		t.Fatalf("null rotation axis should disable rotation")
	}
}

func TestReconstructInterpolatesGapFrames(t *testing.T) {
	to := mmath.NewQuaternionFromAxisAngle(mmath.UNIT_Z_VEC3, 0.6)
	tracks := model.NewBoneTracks()
	tracks.Append("Center", newTestKeyframe(0, r3.Vec{}, mmath.NewQuaternion()))
	tracks.Append("Center", newTestKeyframe(10, r3.Vec{X: 10, Y: -4}, to))

	timeline, _ := Reconstruct(tracks, mustTopology(t, rig.VariantDirect, rig.DefaultProfile()))
	hip := mustBoneTimeline(t, timeline, rig.RootBone)
	if hip.First() != 0 || hip.Last() != 10 || hip.Len() != 11 {
		t.Fatalf("dense range mismatch: first=%d last=%d len=%d", hip.First(), hip.Last(), hip.Len())
	}

	mid := mustState(t, hip, 5)
	if !mmath.NearEqualsVec3(mid.Position, r3.Vec{X: 5, Y: -2}, 1e-6) {
		t.Fatalf("midpoint position mismatch: %v", mid.Position)
	}
	if !mmath.SameOrientation(mid.Rotation, mmath.NewQuaternionFromAxisAngle(mmath.UNIT_Z_VEC3, 0.3), 1e-6) {
		t.Fatalf("midpoint rotation mismatch: %v", mid.Rotation)
	}
	if !mid.RotationEnabled {
		t.Fatalf("gap frames should enable rotation")
	}

	end := mustState(t, hip, 10)
	if !mmath.SameOrientation(end.Rotation, asFloat32Quat(to), 1e-6) {
		t.Fatalf("keyframe rotation should be reached exactly: got=%v want=%v", end.Rotation, to)
	}
	if !mmath.NearEqualsVec3(end.Position, r3.Vec{X: 10, Y: -4}, 1e-6) {
		t.Fatalf("keyframe position should be reached exactly: %v", end.Position)
	}
}

func TestReconstructSortsUnorderedKeyframes(t *testing.T) {
	tracks := model.NewBoneTracks()
	tracks.Append("Center", newTestKeyframe(10, r3.Vec{X: 10}, mmath.NewQuaternion()))
	tracks.Append("Center", newTestKeyframe(0, r3.Vec{}, mmath.NewQuaternion()))

	timeline, _ := Reconstruct(tracks, mustTopology(t, rig.VariantDirect, rig.DefaultProfile()))
	hip := mustBoneTimeline(t, timeline, rig.RootBone)
	if hip.First() != 0 || hip.Last() != 10 {
		t.Fatalf("unsorted keyframes should be ordered: first=%d last=%d", hip.First(), hip.Last())
	}
	if state := mustState(t, hip, 3); !mmath.NearEqualsVec3(state.Position, r3.Vec{X: 3}, 1e-6) {
		t.Fatalf("interpolation after sort mismatch: %v", state.Position)
	}
}

func TestReconstructDuplicateFrameReplacesState(t *testing.T) {
	tracks := model.NewBoneTracks()
	tracks.Append("Center", newTestKeyframe(5, r3.Vec{X: 1}, mmath.NewQuaternionFromAxisAngle(mmath.UNIT_X_VEC3, 0.4)))
	tracks.Append("Center", newTestKeyframe(5, r3.Vec{X: 2}, mmath.NewQuaternion()))
	tracks.Append("Center", newTestKeyframe(7, r3.Vec{X: 4}, mmath.NewQuaternion()))

	timeline, report := Reconstruct(tracks, mustTopology(t, rig.VariantDirect, rig.DefaultProfile()))
	if report.DuplicateFrames != 1 {
		t.Fatalf("duplicate count mismatch: got=%d want=1", report.DuplicateFrames)
	}
	hip := mustBoneTimeline(t, timeline, rig.RootBone)
	seed := mustState(t, hip, 5)
	if !mmath.NearEqualsVec3(seed.Position, r3.Vec{X: 2}, 1e-6) {
		t.Fatalf("duplicate should replace the seed: %v", seed.Position)
	}
	if seed.RotationEnabled {
		t.Fatalf("duplicate seed with null axis should disable rotation")
	}
	if state := mustState(t, hip, 6); !mmath.NearEqualsVec3(state.Position, r3.Vec{X: 3}, 1e-6) {
		t.Fatalf("interpolation should start from the replaced state: %v", state.Position)
	}
}

func TestReconstructComposesParentRotation(t *testing.T) {
	hipRotation := mmath.NewQuaternionFromAxisAngle(mmath.UNIT_Z_VEC3, 0.4)
	localRotation := mmath.NewQuaternionFromAxisAngle(mmath.UNIT_X_VEC3, 0.2)
	tracks := model.NewBoneTracks()
	tracks.Append("Center", newTestKeyframe(0, r3.Vec{}, hipRotation))
	tracks.Append("Center", newTestKeyframe(10, r3.Vec{}, hipRotation))
	tracks.Append("UpperBody", newTestKeyframe(4, r3.Vec{}, localRotation))

	timeline, report := Reconstruct(tracks, mustTopology(t, rig.VariantDirect, rig.DefaultProfile()))
	if len(report.LookupErrors) != 0 {
		t.Fatalf("unexpected lookup errors: %v", report.LookupErrors)
	}
	abdomen := mustBoneTimeline(t, timeline, "abdomen2")
	state := mustState(t, abdomen, 4)
	want := asFloat32Quat(hipRotation).Mul(asFloat32Quat(localRotation))
	if !mmath.SameOrientation(state.Rotation, want, 1e-6) {
		t.Fatalf("parent rotation should be composed on the left: got=%v want=%v", state.Rotation, want)
	}
	if !state.RotationEnabled {
		t.Fatalf("non-null rotation axis should enable rotation")
	}
}

func TestReconstructSeedBeforeParentUsesIdentity(t *testing.T) {
	hipRotation := mmath.NewQuaternionFromAxisAngle(mmath.UNIT_Y_VEC3, 0.5)
	tracks := model.NewBoneTracks()
	tracks.Append("Center", newTestKeyframe(5, r3.Vec{}, hipRotation))
	tracks.Append("Center", newTestKeyframe(9, r3.Vec{}, hipRotation))
	tracks.Append("LowerBody", newTestKeyframe(0, r3.Vec{}, mmath.NewQuaternion()))
	tracks.Append("LowerBody", newTestKeyframe(6, r3.Vec{}, mmath.NewQuaternion()))

	timeline, report := Reconstruct(tracks, mustTopology(t, rig.VariantDirect, rig.DefaultProfile()))
	if len(report.LookupErrors) != 0 {
		t.Fatalf("unexpected lookup errors: %v", report.LookupErrors)
	}
	pelvis := mustBoneTimeline(t, timeline, "pelvis")
	seed := mustState(t, pelvis, 0)
	if !mmath.SameOrientation(seed.Rotation, mmath.NewQuaternion(), 1e-6) {
		t.Fatalf("seed before parent range should use identity parent: %v", seed.Rotation)
	}
	// 親の範囲に入った後のキーフレームは親の回転を合成する。
	end := mustState(t, pelvis, 6)
	if !mmath.SameOrientation(end.Rotation, asFloat32Quat(hipRotation), 1e-6) {
		t.Fatalf("keyframe inside parent range should compose the parent: %v", end.Rotation)
	}
}

func TestReconstructMissingDependencyFallsBackToIdentity(t *testing.T) {
	localRotation := mmath.NewQuaternionFromAxisAngle(mmath.UNIT_X_VEC3, 0.2)
	tracks := model.NewBoneTracks()
	tracks.Append("UpperBody", newTestKeyframe(0, r3.Vec{}, localRotation))

	timeline, report := Reconstruct(tracks, mustTopology(t, rig.VariantDirect, rig.DefaultProfile()))
	if len(report.LookupErrors) != 1 {
		t.Fatalf("lookup error count mismatch: got=%d want=1", len(report.LookupErrors))
	}
	if report.LookupErrors[0].Reason != merrors.LookupReasonMissingDependency {
		t.Fatalf("lookup reason mismatch: %v", report.LookupErrors[0].Reason)
	}
	state := mustState(t, mustBoneTimeline(t, timeline, "abdomen2"), 0)
	if !mmath.SameOrientation(state.Rotation, asFloat32Quat(localRotation), 1e-6) {
		t.Fatalf("missing parent should compose with identity: %v", state.Rotation)
	}
}

func TestReconstructSkipsUnknownLabel(t *testing.T) {
	profile := rig.DefaultProfile()
	delete(profile.Bones, "Neck")
	tracks := model.NewBoneTracks()
	tracks.Append("Center", newTestKeyframe(0, r3.Vec{}, mmath.NewQuaternion()))

	timeline, report := Reconstruct(tracks, mustTopology(t, rig.VariantDirect, profile))
	found := false
	for _, lookupErr := range report.LookupErrors {
		if lookupErr.Bone == "Neck" && lookupErr.Reason == merrors.LookupReasonUnknownBone {
			found = true
		}
	}
	if !found {
		t.Fatalf("unknown label should be reported: %v", report.LookupErrors)
	}
	if _, ok := timeline.Get(rig.RootBone); !ok {
		t.Fatalf("other bones should still be reconstructed")
	}
}

func TestReconstructComposesSingleFrameParent(t *testing.T) {
	neckRotation := mmath.NewQuaternionFromAxisAngle(mmath.UNIT_Z_VEC3, 0.5)
	headRotation := mmath.NewQuaternionFromAxisAngle(mmath.UNIT_X_VEC3, 0.2)
	tracks := model.NewBoneTracks()
	tracks.Append("Center", newTestKeyframe(0, r3.Vec{}, mmath.NewQuaternion()))
	tracks.Append("Center", newTestKeyframe(10, r3.Vec{}, mmath.NewQuaternion()))
	tracks.Append("UpperBody", newTestKeyframe(0, r3.Vec{}, mmath.NewQuaternion()))
	tracks.Append("Neck", newTestKeyframe(0, r3.Vec{}, neckRotation))
	tracks.Append("Head", newTestKeyframe(0, r3.Vec{}, headRotation))

	timeline, report := Reconstruct(tracks, mustTopology(t, rig.VariantDirect, rig.DefaultProfile()))
	if len(report.LookupErrors) != 0 {
		t.Fatalf("unexpected lookup errors: %v", report.LookupErrors)
	}
	head := mustState(t, mustBoneTimeline(t, timeline, "head"), 0)
	want := asFloat32Quat(neckRotation).Mul(asFloat32Quat(headRotation))
	if !mmath.SameOrientation(head.Rotation, want, 1e-6) {
		t.Fatalf("single-frame neck should be composed: got=%v want=%v", head.Rotation, want)
	}
}

func TestReconstructMissingKneeDoesNotUseThigh(t *testing.T) {
	thighRotation := mmath.NewQuaternionFromAxisAngle(mmath.UNIT_X_VEC3, 0.7)
	tracks := model.NewBoneTracks()
	tracks.Append("Center", newTestKeyframe(0, r3.Vec{}, mmath.NewQuaternion()))
	tracks.Append("LowerBody", newTestKeyframe(0, r3.Vec{}, mmath.NewQuaternion()))
	tracks.Append("RightLeg", newTestKeyframe(0, r3.Vec{}, thighRotation))
	tracks.Append("RightAnkle", newTestKeyframe(0, r3.Vec{}, mmath.NewQuaternion()))

	timeline, report := Reconstruct(tracks, mustTopology(t, rig.VariantDirect, rig.DefaultProfile()))
	found := false
	for _, lookupErr := range report.LookupErrors {
		if lookupErr.Bone == "rFoot" && lookupErr.Reason == merrors.LookupReasonMissingDependency {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing knee should be reported: %v", report.LookupErrors)
	}
	foot := mustState(t, mustBoneTimeline(t, timeline, "rFoot"), 0)
	if !mmath.SameOrientation(foot.Rotation, mmath.NewQuaternion(), 1e-6) {
		t.Fatalf("missing knee should compose with identity: %v", foot.Rotation)
	}
}
