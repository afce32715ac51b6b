package transport

import (
	"errors"

	"github.com/dmitrijs2005/trustvote/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToStatus converts a store error into a gRPC status error. Constraint
// errors keep their message so FromStatus can tell them apart.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, common.ErrHandleTaken):
		return status.Error(codes.AlreadyExists, common.ErrHandleTaken.Error())
	case errors.Is(err, common.ErrIDTaken):
		return status.Error(codes.AlreadyExists, common.ErrIDTaken.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}

// FromStatus maps a gRPC status error back onto the shared sentinels.
// Codes without a sentinel are returned unchanged.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.AlreadyExists:
		if st.Message() == common.ErrIDTaken.Error() {
			return common.ErrIDTaken
		}
		return common.ErrHandleTaken
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.InvalidArgument:
		return errors.Join(common.ErrorValidation, errors.New(st.Message()))
	case codes.Internal:
		return errors.Join(common.ErrorInternal, err)
	}
	return err
}
