package service

import (
	"errors"
	"strconv"

	"connectrpc.com/connect"

	apperrors "github.com/mmynk/catalog/internal/errors"
)

// Response metadata carrying the stable error type and status code.
const (
	HeaderErrorType = "Catalog-Error-Type"
	HeaderStatus    = "Catalog-Status"
)

// toConnectError maps an application error onto a Connect error. The message
// is the caller-facing one; causes stay in the logs.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}

	code := connect.CodeInternal
	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		code = connect.CodeInvalidArgument
	case apperrors.ErrorTypeNotFound:
		code = connect.CodeNotFound
	case apperrors.ErrorTypeConflict:
		code = connect.CodeAlreadyExists
	}

	ce := connect.NewError(code, errors.New(appErr.Message))
	ce.Meta().Set(HeaderErrorType, string(appErr.Type))
	ce.Meta().Set(HeaderStatus, strconv.Itoa(appErr.Code))
	return ce
}
