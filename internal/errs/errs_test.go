package errs

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesKindAndCause(t *testing.T) {
	err := E(ErrPersistence, "save", io.ErrShortWrite)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.NotErrorIs(t, err, ErrSchema)
	assert.Equal(t, "persistence error: save: short write", err.Error())
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"kind only", E(ErrModelNotTrained, "", nil), "model not trained"},
		{"kind and op", E(ErrNoData, "train", nil), "no data: train"},
		{"kind and cause", E(ErrSchema, "", errors.New("bad")), "schema error: bad"},
		{"formatted", Errorf(ErrSchema, "predict", "column %q missing", "Age"), `schema error: predict: column "Age" missing`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOf(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), E(ErrTraining, "fit", nil))

	assert.Equal(t, ErrTraining, KindOf(wrapped))
	assert.Nil(t, KindOf(errors.New("plain")))
	assert.Nil(t, KindOf(nil))
}

func TestErrorsAsReachesCause(t *testing.T) {
	type pathErr struct{ error }
	cause := pathErr{errors.New("disk full")}

	err := E(ErrPersistence, "save", cause)

	var target pathErr
	assert.True(t, errors.As(err, &target))
}
