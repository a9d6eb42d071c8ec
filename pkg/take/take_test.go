package take

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := map[string]struct {
		in   string
		want Value
	}{
		"unsigned is negative": {in: "3", want: Count(-3)},
		"plus is positive":     {in: "+3", want: Count(3)},
		"minus is negative":    {in: "-3", want: Count(-3)},
		"zero":                 {in: "0", want: Count(0)},
		"minus zero":           {in: "-0", want: Count(0)},
		"plus zero":            {in: "+0", want: FromStart()},
		"leading zeros":        {in: "+007", want: Count(7)},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseSigns(t *testing.T) {
	for _, n := range []int64{0, 1, 2, 10, 4096, math.MaxInt32, math.MaxInt64} {
		s := strconv.FormatInt(n, 10)

		v, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, Count(-n), v, s)

		v, err = Parse("-" + s)
		require.NoError(t, err)
		assert.Equal(t, Count(-n), v, "-"+s)

		if n == 0 {
			continue
		}
		v, err = Parse("+" + s)
		require.NoError(t, err)
		assert.Equal(t, Count(n), v, "+"+s)
	}
}

func TestParseBoundaries(t *testing.T) {
	v, err := Parse(strconv.FormatInt(math.MaxInt64, 10))
	require.NoError(t, err)
	require.Equal(t, Count(math.MinInt64+1), v)

	v, err = Parse(strconv.FormatInt(math.MinInt64+1, 10))
	require.NoError(t, err)
	require.Equal(t, Count(math.MinInt64+1), v)

	v, err = Parse("+" + strconv.FormatInt(math.MaxInt64, 10))
	require.NoError(t, err)
	require.Equal(t, Count(math.MaxInt64), v)

	v, err = Parse(strconv.FormatInt(math.MinInt64, 10))
	require.NoError(t, err)
	require.Equal(t, Count(math.MinInt64), v)

	// The magnitude of MinInt64 without a sign means the same thing.
	v, err = Parse("9223372036854775808")
	require.NoError(t, err)
	require.Equal(t, Count(math.MinInt64), v)

	for _, s := range []string{
		"+9223372036854775808",
		"-9223372036854775809",
		"18446744073709551616",
	} {
		_, err = Parse(s)
		require.ErrorIs(t, err, ErrInvalidSpec, s)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"3.14", "foo", "", "+", "-", "++3", "3-", " 3", "1e3", "0x10"} {
		_, err := Parse(s)
		require.Error(t, err, "%q", s)
		require.ErrorIs(t, err, ErrInvalidSpec)
		require.Equal(t, s, err.Error())

		var specErr *SpecError
		require.True(t, errors.As(err, &specErr))
		require.Equal(t, s, specErr.Spec)
	}
}

func TestValueString(t *testing.T) {
	for _, v := range []Value{FromStart(), Count(0), Count(3), Count(-3), Count(math.MaxInt64), Count(math.MinInt64)} {
		got, err := Parse(v.String())
		require.NoError(t, err)
		require.Equal(t, v, got, v.String())
	}
}

func TestResolve(t *testing.T) {
	type result struct {
		offset int64
		ok     bool
	}
	none := result{}
	at := func(i int64) result { return result{i, true} }

	testCases := []struct {
		v     Value
		total int64
		want  result
	}{
		// +0 from an empty source
		{FromStart(), 0, none},
		{FromStart(), 1, at(0)},
		// taking zero elements
		{Count(0), 1, none},
		{Count(0), 0, none},
		// anything from an empty source
		{Count(1), 0, none},
		{Count(-1), 0, none},
		// starting past the end
		{Count(2), 1, none},
		{Count(1), 10, at(0)},
		{Count(2), 10, at(1)},
		{Count(3), 10, at(2)},
		{Count(10), 10, at(9)},
		{Count(11), 10, none},
		{Count(-1), 10, at(9)},
		{Count(-2), 10, at(8)},
		{Count(-3), 10, at(7)},
		{Count(-10), 10, at(0)},
		// more than available means everything
		{Count(-20), 10, at(0)},
		{Count(math.MinInt64), 10, at(0)},
		{Count(math.MaxInt64), 10, none},
		{Count(math.MinInt64), math.MaxInt64, at(0)},
		{Count(math.MaxInt64), math.MaxInt64, at(math.MaxInt64 - 1)},
	}
	for _, tc := range testCases {
		offset, ok := tc.v.Resolve(tc.total)
		require.Equal(t, tc.want, result{offset, ok}, "%s of %d", tc.v, tc.total)
	}
}

func TestMustParse(t *testing.T) {
	require.Equal(t, Count(-10), MustParse("10"))
	require.Panics(t, func() { MustParse("ten") })
}
