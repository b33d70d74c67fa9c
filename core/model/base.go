// Package model は推定器の学習状態と共通インターフェースを提供します。
package model

import (
	"github.com/YuminosukeSato/olsstat/pkg/errors"
)

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

// String は状態名を返す
func (s EstimatorState) String() string {
	switch s {
	case NotFitted:
		return "NotFitted"
	case Fitted:
		return "Fitted"
	default:
		return "Unknown"
	}
}

// BaseEstimator は全てのモデルの基底となる構造体
//
// 状態遷移は NotFitted -> Fitted のみで、再学習中は一度 Reset してから
// SetFitted する。学習に失敗した場合は NotFitted のまま残る。
type BaseEstimator struct {
	state EstimatorState
}

// State は現在の学習状態を返す
func (e *BaseEstimator) State() EstimatorState {
	return e.state
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted はモデルを学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset はモデルを初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}

// RequireFitted は未学習の場合に NotFittedError を返す
func (e *BaseEstimator) RequireFitted(modelName, method string) error {
	if !e.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}
