package xiangqi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPlacement 摆子失败：越界、重叠、名册已满或重复的将帅
	ErrInvalidPlacement = errors.New("invalid placement")

	// ErrIllegalMove 请求的走法不在合法走法集合里
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvariantViolation 内部一致性被破坏，说明引擎有 bug
	ErrInvariantViolation = errors.New("invariant violation")

	ErrGameOver    = errors.New("game over")
	ErrNoUndo      = errors.New("nothing to undo")
	ErrNoSelection = errors.New("no piece selected")
	ErrInvalidFEN  = errors.New("invalid FEN")
)

// PlacementError 记录是哪一次摆子失败
type PlacementError struct {
	Kind   Kind
	Square Square
	Side   Side
	Reason string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%s: %s %s at %s: %s", ErrInvalidPlacement, e.Side, e.Kind, e.Square, e.Reason)
}

func (e *PlacementError) Unwrap() error { return ErrInvalidPlacement }

type MoveError struct {
	Move   Move
	Reason string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %s", ErrIllegalMove, e.Move.From, e.Move.To, e.Reason)
}

func (e *MoveError) Unwrap() error { return ErrIllegalMove }

// InvariantError 作为 panic 的值抛出，也可由 Validate 返回
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvariantViolation, e.Reason)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

func invariant(format string, args ...any) {
	panic(&InvariantError{Reason: fmt.Sprintf(format, args...)})
}
