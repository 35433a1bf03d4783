package errorutil_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/connstr/internal/errorutil"
)

const errKind errorutil.Error = "kind"

func TestNewWrapperError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")

	cases := []struct {
		name    string
		args    []any
		wantMsg string
	}{
		{"no args", nil, "kind"},
		{"message", []any{"bad %s"}, "kind: bad %s"},
		{"format", []any{"bad %s", "port"}, "kind: bad port"},
		{"error", []any{cause}, "kind: cause"},
		{"already wrapped", []any{errorutil.NewWrapperError(errKind, "x")}, "kind: x"},
		{"unexpected arg", []any{42}, "kind"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := errorutil.NewWrapperError(errKind, c.args...)
			if !errors.Is(err, errKind) {
				t.Errorf("errorutil.NewWrapperError(kind, %v) = %v, want wrapping %v", c.args, err, errKind)
			}
			if got := err.Error(); got != c.wantMsg {
				t.Errorf("errorutil.NewWrapperError(kind, %v).Error() = %q, want %q", c.args, got, c.wantMsg)
			}
		})
	}
}

func TestJoinPrefix(t *testing.T) {
	t.Parallel()

	err1 := errors.New("first")
	err2 := errors.New("second\nline")

	if err := errorutil.JoinPrefix("prefix", nil, nil); err != nil {
		t.Errorf("errorutil.JoinPrefix(prefix, nil, nil) = %v, want nil", err)
	}

	err := errorutil.JoinPrefix("prefix:", nil, err1)
	if got, want := err.Error(), "prefix: first"; got != want {
		t.Errorf("errorutil.JoinPrefix(prefix:, nil, err1).Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, err1) {
		t.Errorf("errorutil.JoinPrefix(prefix:, nil, err1) = %v, want wrapping %v", err, err1)
	}

	err = errorutil.JoinPrefix("prefix:", err1, err2)
	if got, want := err.Error(), "prefix:\n  - first\n  - second\n    line"; got != want {
		t.Errorf("errorutil.JoinPrefix(prefix:, err1, err2).Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, err1) || !errors.Is(err, err2) {
		t.Errorf("errorutil.JoinPrefix(prefix:, err1, err2) = %v, want wrapping both", err)
	}
}
