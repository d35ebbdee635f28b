package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		width int
		want  string
		ok    bool
	}{
		{name: "pads", in: "8*3", width: 6, want: "8*3   ", ok: true},
		{name: "exact", in: "(1+2+3)*4", width: 9, want: "(1+2+3)*4", ok: true},
		{name: "empty", in: "", width: 3, want: "   ", ok: true},
		{name: "too long", in: "1+2+3+4", width: 4, want: "1+2+3+4", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := PadAnswer(tt.in, tt.width)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorMessagesCoverCodes(t *testing.T) {
	t.Parallel()

	codes := []int{
		ErrCodeUnknown, ErrCodeInvalidMsg, ErrCodeRateLimit, ErrCodeRoomNotFound, ErrCodeRoomFull,
		ErrCodeNotInRoom, ErrCodeGameStarted, ErrCodeAlreadyInRoom, ErrCodeGameNotStart,
		ErrCodeNotAPlayer, ErrCodeTurnClosed, ErrCodeInvalidAnswer, ErrCodeDealFailed,
		ErrCodeServerMaintenance,
	}
	for _, c := range codes {
		assert.NotEmpty(t, ErrorMessages[c], "code %d", c)
	}
}
