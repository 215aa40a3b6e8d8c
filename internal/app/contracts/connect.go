package contracts

import (
	"context"
	"studiobook-service/internal/pkg/dto/requests"
	"studiobook-service/internal/pkg/dto/responses"
)

type ConnectUsecase interface {
	CreateAccount(ctx context.Context, request *requests.CreateConnectAccount) (*responses.ConnectAccountCreated, error)
	// GetAccountStatus retrieves the live account from the provider and
	// refreshes the local mirror.
	GetAccountStatus(ctx context.Context, accountID string) (*responses.ConnectAccountStatus, error)
}
