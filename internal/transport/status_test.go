package transport

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/trustvote/internal/common"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestStatusRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   error
		code codes.Code
		want error
	}{
		{"handle taken", fmt.Errorf("insert: %w", common.ErrHandleTaken), codes.AlreadyExists, common.ErrHandleTaken},
		{"id taken", common.ErrIDTaken, codes.AlreadyExists, common.ErrIDTaken},
		{"not found", common.ErrorNotFound, codes.NotFound, common.ErrorNotFound},
		{"validation", fmt.Errorf("%w: empty handle", common.ErrorValidation), codes.InvalidArgument, common.ErrorValidation},
		{"other", errors.New("db down"), codes.Internal, common.ErrorInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := ToStatus(tt.in)
			assert.Equal(t, tt.code, status.Code(st))
			assert.ErrorIs(t, FromStatus(st), tt.want)
		})
	}
}

func TestToStatus_KeepsExistingStatus(t *testing.T) {
	in := status.Error(codes.Unavailable, "down")
	assert.Equal(t, in, ToStatus(in))
	assert.Equal(t, codes.Unavailable, status.Code(FromStatus(in)))
}

func TestNil(t *testing.T) {
	assert.NoError(t, ToStatus(nil))
	assert.NoError(t, FromStatus(nil))
}
