package repositories

import (
	"database/sql/driver"
	"errors"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	queryErr := errors.New("pq: syntax error at or near \"SELEC\"")

	tests := []struct {
		name        string
		err         error
		unavailable bool
	}{
		{name: "nil passes through", err: nil},
		{name: "bad connection", err: driver.ErrBadConn, unavailable: true},
		{name: "wrapped bad connection", err: errors.Join(errors.New("scan row"), driver.ErrBadConn), unavailable: true},
		{name: "network timeout", err: &net.OpError{Op: "read", Err: errors.New("connection reset by peer")}, unavailable: true},
		{name: "connection exception class", err: &pq.Error{Code: "08006"}, unavailable: true},
		{name: "query error untouched", err: queryErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			if tt.unavailable {
				assert.ErrorIs(t, got, ErrUnavailable)
				return
			}
			assert.Equal(t, tt.err, got)
			assert.NotErrorIs(t, got, ErrUnavailable)
		})
	}
}
