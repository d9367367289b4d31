package domain

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", NotFound("gone"))))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized("nope")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(Internal("db", errors.New("boom"))))
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("list users failed", cause)
	assert.Equal(t, "list users failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "winners must be 2 distinct users", Validation("winners must be 2 distinct users").Error())
	assert.Equal(t, "3 of the selected players do not exist", Validationf("%d of the selected players do not exist", 3).Error())
}

func TestStandingWinRate(t *testing.T) {
	assert.Nil(t, Standing{}.WinRate())

	rate := Standing{Matches: 3, Wins: 1}.WinRate()
	if assert.NotNil(t, rate) {
		assert.Equal(t, 33.33, *rate)
	}
	rate = Standing{Matches: 3, Wins: 2}.WinRate()
	if assert.NotNil(t, rate) {
		assert.Equal(t, 66.67, *rate)
	}
	rate = Standing{Matches: 4, Wins: 0}.WinRate()
	if assert.NotNil(t, rate) {
		assert.Equal(t, 0.0, *rate)
	}
}

func TestStandingWinRateHalfUp(t *testing.T) {
	cases := []struct {
		wins, matches int64
		want          float64
	}{
		{23, 160, 14.38}, // 14.375
		{41, 160, 25.63}, // 25.625
		{1, 8, 12.5},
		{1, 1, 100},
		{1, 2000, 0.05},
		{1999, 2000, 99.95},
	}
	for _, c := range cases {
		rate := Standing{Matches: c.matches, Wins: c.wins}.WinRate()
		if assert.NotNil(t, rate) {
			assert.Equal(t, c.want, *rate, "%d/%d", c.wins, c.matches)
		}
	}
}

// 与精确的十进制 ROUND(x, 2) 逐一比对
func TestStandingWinRateMatchesExactRounding(t *testing.T) {
	for m := int64(1); m <= 2000; m++ {
		for w := int64(0); w <= m; w++ {
			num := new(big.Rat).SetFrac64(w*10000, m)
			num.Add(num, big.NewRat(1, 2))
			want := new(big.Int).Quo(num.Num(), num.Denom()).Int64()

			got := Standing{Matches: m, Wins: w}.WinRate()
			require.NotNil(t, got)
			if *got != float64(want)/100 {
				t.Fatalf("%d/%d: got %v want %v", w, m, *got, float64(want)/100)
			}
		}
	}
}

func TestUserPatchEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.Empty())
	name := "Ana"
	assert.False(t, UserPatch{Name: &name}.Empty())

	blank := ""
	assert.True(t, UserPatch{Name: &blank, LastName: &blank}.Empty())
	assert.True(t, UserPatch{Email: &blank, Password: &blank}.Empty())
	assert.False(t, UserPatch{Name: &blank, LastName: &name}.Empty())
}
