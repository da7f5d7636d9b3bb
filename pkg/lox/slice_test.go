package lox_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"auction_client/pkg/lox"
)

func TestMapErr(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		input  []string
		result []int
		err    bool
	}{
		{name: "All valid", input: []string{"1", "2", "3"}, result: []int{1, 2, 3}},
		{name: "Empty", input: nil, result: []int{}},
		{name: "Stops on error", input: []string{"1", "x", "3"}, err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			result, err := lox.MapErr(tc.input, strconv.Atoi)
			if tc.err {
				var numErr *strconv.NumError
				rq.True(errors.As(err, &numErr))
				rq.Nil(result)

				return
			}

			rq.NoError(err)
			rq.Equal(tc.result, result)
		})
	}
}
