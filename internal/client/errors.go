package client

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceError is a rejection reported by the transaction service itself,
// with a message that can be shown to the user as is.
type ServiceError struct {
	Code    codes.Code
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("transaction service: %s: %s", e.Code, e.Message)
}

func (e *ServiceError) UserMessage() string {
	return e.Message
}

// convertError keeps the service's message only for statuses the service
// raises deliberately. Transport failures and timeouts carry no user message.
func convertError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}

	switch st.Code() {
	case codes.NotFound, codes.InvalidArgument, codes.FailedPrecondition, codes.PermissionDenied:
		return &ServiceError{Code: st.Code(), Message: st.Message()}
	default:
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}
}
