package googledocs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/tzofim/peula/internal/domain"
)

const serviceName = "google docs"

// Services bundles the Docs and Drive API clients.
type Services struct {
	Docs  *docs.Service
	Drive *drive.Service
}

// NewServices creates API clients authorised by ts. Extra options are
// appended, which lets tests point both clients at a fake server.
func NewServices(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*Services, error) {
	all := append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	d, err := docs.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("creating docs client: %w", err)
	}
	dr, err := drive.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("creating drive client: %w", err)
	}
	return &Services{Docs: d, Drive: dr}, nil
}

func notConfigured() error {
	return &domain.ExternalServiceError{Service: serviceName, Message: "document service not configured"}
}

// externalError wraps an API failure with an operator-facing message.
func externalError(message string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			message += ": access denied (share the file with the service account)"
		case http.StatusNotFound:
			message += ": not found"
		}
	}
	return &domain.ExternalServiceError{Service: serviceName, Message: message, Err: err}
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}
