package wager

import (
	"fmt"
	"testing"

	"matka/errs"
	"matka/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitSum(t *testing.T) {
	assert.Equal(t, "6", DigitSum("123"))
	assert.Equal(t, "7", DigitSum("999"))
	assert.Equal(t, "0", DigitSum("000"))
	assert.Equal(t, "5", DigitSum("456"))
	assert.Equal(t, "5", DigitSum("500"))
	assert.Equal(t, "", DigitSum("12"))
	assert.Equal(t, "", DigitSum("12a"))
}

func TestDigitSumIsTotal(t *testing.T) {
	for n := 0; n < 1000; n++ {
		p := fmt.Sprintf("%03d", n)
		want := (n/100 + n/10%10 + n%10) % 10
		require.Equal(t, fmt.Sprint(want), DigitSum(p), p)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		gt      models.GameType
		fields  Fields
		want    Payload
		wantErr bool
	}{
		{"single digit", models.SingleDigit, Fields{Digit: "5"}, Digit{Value: "5"}, false},
		{"single digit too long", models.SingleDigit, Fields{Digit: "55"}, nil, true},
		{"odd even letters", models.OddEven, Fields{Digit: "x"}, nil, true},
		{"jodi", models.JodiDigit, Fields{Digit: "07"}, Jodi{Value: "07"}, false},
		{"jodi one numeral", models.JodiDigit, Fields{Digit: "7"}, nil, true},
		{"digit base jodi", models.DigitBaseJodi, Fields{Digit: "38"}, Jodi{Value: "38"}, false},
		{"panna", models.SinglePanna, Fields{Panna: "123"}, Panna{Value: "123"}, false},
		{"motor panna trimmed", models.SPMotor, Fields{Panna: " 457 "}, Panna{Value: "457"}, false},
		{"panna short", models.DoublePanna, Fields{Panna: "12"}, nil, true},
		{"half sangam open", models.HalfSangam, Fields{Digit: "4", ClosePanna: "123"}, HalfSangam{Digit: "4", ClosePanna: "123"}, false},
		{"half sangam both legs", models.HalfSangam, Fields{Digit: "4", OpenPanna: "120", ClosePanna: "123"}, nil, true},
		{"half sangam no leg", models.HalfSangam, Fields{Digit: "4"}, nil, true},
		{"full sangam", models.FullSangam, Fields{OpenPanna: "120", ClosePanna: "345"}, FullSangam{OpenPanna: "120", ClosePanna: "345"}, false},
		{"full sangam missing close", models.FullSangam, Fields{OpenPanna: "120"}, nil, true},
		{"unknown type", models.GameType("lucky"), Fields{Digit: "1"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.gt, tt.fields)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.Is(err, errs.KindValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyClearsStaleFields(t *testing.T) {
	w := &models.Wager{Digit: "5", Panna: "123", OpenPanna: "111", ClosePanna: "222"}

	Apply(w, Panna{Value: "480"})

	assert.Equal(t, "480", w.Panna)
	assert.Empty(t, w.Digit)
	assert.Empty(t, w.OpenPanna)
	assert.Empty(t, w.ClosePanna)
}

func TestResolveSession(t *testing.T) {
	s, err := ResolveSession(models.MarketMain, models.SingleDigit, "OPEN")
	require.NoError(t, err)
	assert.Equal(t, models.SessionOpen, s)

	_, err = ResolveSession(models.MarketMain, models.SinglePanna, "")
	assert.Error(t, err)

	s, err = ResolveSession(models.MarketMain, models.JodiDigit, "close")
	require.NoError(t, err)
	assert.Equal(t, models.SessionNone, s)

	s, err = ResolveSession(models.MarketStarline, models.SingleDigit, "open")
	require.NoError(t, err)
	assert.Equal(t, models.SessionNone, s)
}

func TestCheckLeg(t *testing.T) {
	open := HalfSangam{Digit: "1", ClosePanna: "123"}
	closing := HalfSangam{Digit: "1", OpenPanna: "123"}

	assert.NoError(t, CheckLeg(open, models.SessionOpen))
	assert.Error(t, CheckLeg(open, models.SessionClose))
	assert.NoError(t, CheckLeg(closing, models.SessionClose))
	assert.Error(t, CheckLeg(closing, models.SessionOpen))
	assert.NoError(t, CheckLeg(Digit{Value: "1"}, models.SessionOpen))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "4-123", HalfSangam{Digit: "4", ClosePanna: "123"}.Key(models.SessionOpen))
	assert.Equal(t, "120-4", HalfSangam{Digit: "4", OpenPanna: "120"}.Key(models.SessionClose))
	assert.Equal(t, "120-345", FullSangam{OpenPanna: "120", ClosePanna: "345"}.Key(models.SessionNone))
	assert.Equal(t, "07", Jodi{Value: "07"}.Key(models.SessionNone))
}
