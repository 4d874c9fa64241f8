// 指示: miu200521358
// Package merrors は変換処理で使う型付きエラーを提供する。
package merrors

import (
	"errors"
	"fmt"
)

// FormatError はモーションファイルの形式不正を表す。
type FormatError struct {
	Message string
	Cause   error
}

// NewFormatError はFormatErrorを生成する。
func NewFormatError(format string, cause error, params ...any) *FormatError {
	return &FormatError{Message: fmt.Sprintf(format, params...), Cause: cause}
}

// Error はエラーメッセージを返す。
func (e *FormatError) Error() string {
	if e.Cause == nil {
		return "VMD形式エラー: " + e.Message
	}
	return fmt.Sprintf("VMD形式エラー: %s: %v", e.Message, e.Cause)
}

// Unwrap は原因エラーを返す。
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// LookupReason はLookupErrorの発生理由を表す。
type LookupReason string

const (
	// LookupReasonUnknownBone は変換先ボーン名が見つからないことを表す。
	LookupReasonUnknownBone LookupReason = "unknown_bone"
	// LookupReasonMissingDependency は依存ボーンのタイムラインが無いことを表す。
	LookupReasonMissingDependency LookupReason = "missing_dependency"
)

// LookupError は読み飛ばし可能な参照失敗を表す。
type LookupError struct {
	Bone   string
	Reason LookupReason
	Detail string
}

// NewLookupError はLookupErrorを生成する。
func NewLookupError(bone string, reason LookupReason, detail string) *LookupError {
	return &LookupError{Bone: bone, Reason: reason, Detail: detail}
}

// Error はエラーメッセージを返す。
func (e *LookupError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("ボーン参照失敗: bone=%s reason=%s", e.Bone, e.Reason)
	}
	return fmt.Sprintf("ボーン参照失敗: bone=%s reason=%s detail=%s", e.Bone, e.Reason, e.Detail)
}

// DestinationMismatchError は変換先ドキュメントに必要な要素が無いことを表す。
type DestinationMismatchError struct {
	Atom     string
	Storable string
	Cause    error
}

// NewDestinationMismatchError はDestinationMismatchErrorを生成する。
func NewDestinationMismatchError(atom string, storable string, cause error) *DestinationMismatchError {
	return &DestinationMismatchError{Atom: atom, Storable: storable, Cause: cause}
}

// Error はエラーメッセージを返す。
func (e *DestinationMismatchError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("変換先シーンに要素がありません: atom=%s storable=%s", e.Atom, e.Storable)
	}
	return fmt.Sprintf("変換先シーンに要素がありません: atom=%s storable=%s: %v", e.Atom, e.Storable, e.Cause)
}

// Unwrap は原因エラーを返す。
func (e *DestinationMismatchError) Unwrap() error {
	return e.Cause
}

// IsFormatError はerrがFormatErrorを含むか判定する。
func IsFormatError(err error) bool {
	var target *FormatError
	return errors.As(err, &target)
}

// IsLookupError はerrがLookupErrorを含むか判定する。
func IsLookupError(err error) bool {
	var target *LookupError
	return errors.As(err, &target)
}

// IsDestinationMismatchError はerrがDestinationMismatchErrorを含むか判定する。
func IsDestinationMismatchError(err error) bool {
	var target *DestinationMismatchError
	return errors.As(err, &target)
}
