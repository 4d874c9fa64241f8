// 指示: miu200521358
package vmd

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/miu200521358/mu_vmd2vam/pkg/domain/merrors"
	"github.com/miu200521358/mu_vmd2vam/pkg/domain/model"
	"golang.org/x/text/encoding/japanese"
)

const (
	// Signature はVMDファイル先頭の識別文字列。
	Signature = "Vocaloid Motion Data 0002"

	signatureFieldLength = 30
	modelNameLength      = 20
	boneNameLength       = 15
	// keyframeRecordLength はボーン名を除くキーフレーム1件のバイト数。
	keyframeRecordLength = 4 + 3*4 + 4*4 + model.InterpolationLength
)

// boneRecord はボーンキーフレームのバイナリ配置を表す。
type boneRecord struct {
	FrameNumber   uint32
	Location      [3]float32
	Rotation      [4]float32
	Interpolation [model.InterpolationLength]int8
}

// Decode はVMDのヘッダとボーンキーフレームを読み込む。
// ボーン名は translate で置換する。nil の場合は既定の置換規則を使う。
func Decode(r io.Reader, translate model.NameTranslator) (*model.Motion, error) {
	if translate == nil {
		translate = model.TranslateBoneName
	}
	reader := bufio.NewReader(r)

	signature := make([]byte, signatureFieldLength)
	if err := readFull(reader, signature, "シグネチャ"); err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(signature, []byte(Signature)) {
		return nil, merrors.NewFormatError("シグネチャが不正です: %q", nil, trimNull(signature))
	}

	nameField := make([]byte, modelNameLength)
	if err := readFull(reader, nameField, "モデル名"); err != nil {
		return nil, err
	}
	motion := model.NewMotion(decodeShiftJIS(nameField))

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, merrors.NewFormatError("ボーンキーフレーム数の読み込みに失敗しました", err)
	}
	logVmdDebug("VMD読込ステップ: ヘッダ解析完了 model=%s count=%d", motion.ModelName, count)

	boneName := make([]byte, boneNameLength)
	for i := uint32(0); i < count; i++ {
		if err := readFull(reader, boneName, fmt.Sprintf("ボーン名[%d]", i)); err != nil {
			return nil, err
		}
		var record boneRecord
		if err := binary.Read(reader, binary.LittleEndian, &record); err != nil {
			return nil, merrors.NewFormatError("ボーンキーフレーム[%d]の読み込みに失敗しました", err, i)
		}
		motion.BoneTracks.Append(translate(decodeShiftJIS(boneName)), model.BoneKeyframe{
			FrameNumber:   record.FrameNumber,
			Location:      record.Location,
			Rotation:      record.Rotation,
			Interpolation: record.Interpolation,
		})
	}
	return motion, nil
}

// Encode はヘッダとボーンキーフレームをVMD形式で書き込む。
// レコードは読込時の順序で書き込む。
func Encode(w io.Writer, motion *model.Motion) error {
	if motion == nil {
		return fmt.Errorf("保存対象モーションが未設定です")
	}
	writer := bufio.NewWriter(w)

	signature := make([]byte, signatureFieldLength)
	copy(signature, Signature)
	if _, err := writer.Write(signature); err != nil {
		return fmt.Errorf("シグネチャ書き込み失敗: %w", err)
	}
	nameField, err := encodeShiftJIS(motion.ModelName, modelNameLength)
	if err != nil {
		return err
	}
	if _, err := writer.Write(nameField); err != nil {
		return fmt.Errorf("モデル名書き込み失敗: %w", err)
	}

	order := motion.BoneTracks.RecordOrder()
	if err := binary.Write(writer, binary.LittleEndian, uint32(len(order))); err != nil {
		return fmt.Errorf("ボーンキーフレーム数書き込み失敗: %w", err)
	}

	cursors := map[string]int{}
	encodedNames := map[string][]byte{}
	framesByName := map[string][]model.BoneKeyframe{}
	for _, name := range order {
		frames, ok := framesByName[name]
		if !ok {
			frames = motion.BoneTracks.Get(name)
			framesByName[name] = frames
			encoded, err := encodeShiftJIS(name, boneNameLength)
			if err != nil {
				return err
			}
			encodedNames[name] = encoded
		}
		keyframe := frames[cursors[name]]
		cursors[name]++

		if _, err := writer.Write(encodedNames[name]); err != nil {
			return fmt.Errorf("ボーン名書き込み失敗: %w", err)
		}
		record := boneRecord{
			FrameNumber:   keyframe.FrameNumber,
			Location:      keyframe.Location,
			Rotation:      keyframe.Rotation,
			Interpolation: keyframe.Interpolation,
		}
		if err := binary.Write(writer, binary.LittleEndian, &record); err != nil {
			return fmt.Errorf("ボーンキーフレーム書き込み失敗: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("VMD書き込み失敗: %w", err)
	}
	return nil
}

// readFull は固定長フィールドを読み込み、不足時はFormatErrorを返す。
func readFull(reader io.Reader, buf []byte, field string) error {
	if _, err := io.ReadFull(reader, buf); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return merrors.NewFormatError("%sの読み込みに失敗しました", err, field)
	}
	return nil
}

// trimNull は最初のヌル文字以降を切り捨てる。
func trimNull(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// decodeShiftJIS はヌル終端のShift_JIS文字列を復号する。
// 末尾の2バイト文字が途中で切れている場合は最終バイトを捨てて復号する。
func decodeShiftJIS(field []byte) string {
	raw := trimNull(field)
	decoded, ok := tryDecodeShiftJIS(raw)
	if ok || len(raw) == 0 {
		return decoded
	}
	if retried, retryOk := tryDecodeShiftJIS(raw[:len(raw)-1]); retryOk {
		return retried
	}
	logVmdWarn("Shift_JIS復号に失敗したため置換文字を含めます: %q", raw)
	return decoded
}

// tryDecodeShiftJIS はShift_JISを復号し、置換文字が含まれないか判定する。
func tryDecodeShiftJIS(raw []byte) (string, bool) {
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return string(decoded), false
	}
	text := string(decoded)
	return text, !strings.ContainsRune(text, utf8.RuneError)
}

// encodeShiftJIS は文字列をShift_JISで固定長フィールドへ符号化する。
// 長い場合は切り詰め、短い場合はヌル文字で埋める。
func encodeShiftJIS(text string, width int) ([]byte, error) {
	encoded, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("Shift_JIS符号化失敗: %s: %w", text, err)
	}
	field := make([]byte, width)
	copy(field, encoded)
	return field, nil
}
