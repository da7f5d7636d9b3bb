package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"auction_client/internal/domain"
	"auction_client/pkg/errcodes"
)

func TestUserMessage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "Server error keeps server text",
			err:  domain.NewServerError(400, "Недостаточно средств для покупки"),
			want: "Недостаточно средств для покупки",
		},
		{
			name: "Server error without text",
			err:  domain.NewServerError(500, ""),
			want: "Ошибка запроса",
		},
		{
			name: "Network error",
			err:  fmt.Errorf("api.Get: %w", domain.NewNetworkError(errors.New("dial tcp: refused"))),
			want: "Ошибка соединения с сервером",
		},
		{
			name: "Render error",
			err:  domain.NewRenderError(errors.New("bad")),
			want: "Некорректные данные от сервера",
		},
		{
			name: "Foreign error",
			err:  errors.New("boom"),
			want: "Ошибка запроса",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, domain.UserMessage(tc.err))
		})
	}
}

func TestCodes(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	cause := errors.New("timeout")
	err := fmt.Errorf("wrap: %w", domain.NewNetworkError(cause))

	rq.True(domain.IsNetworkError(err))
	rq.False(domain.IsServerError(err))
	rq.ErrorIs(err, cause)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.NetworkError, code)

	appErr, ok := domain.AsAppError(domain.NewServerError(404, "Товар не найден"))
	rq.True(ok)
	rq.Equal(404, appErr.Status)
	rq.True(domain.IsRenderError(domain.NewRenderError(cause)))
}
