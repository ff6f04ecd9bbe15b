package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/shared"
)

// ClientRepository defines persistence operations for clients
type ClientRepository interface {
	shared.TenantReader[Client]
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Client, error)
	Save(ctx context.Context, client *Client) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// ClientRateRepository defines persistence operations for rate history entries
type ClientRateRepository interface {
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]ClientRate, error)
	FindByClients(ctx context.Context, tenantID uuid.UUID, clientIDs []uuid.UUID) (map[uuid.UUID][]ClientRate, error)
	Save(ctx context.Context, rate *ClientRate) error
}
