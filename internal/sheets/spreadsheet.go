package sheets

import (
	"context"
	"time"

	"github.com/farmcoop/order-service/internal/model"
	"github.com/farmcoop/order-service/internal/obs"
)

// Spreadsheet is the facade over the co-op's spreadsheet. Reads go straight
// to the Orders/Users sheets; every mutation is guarded by the distributed
// Mutex, so at most one order change is in flight across all processes.
// Unguarded reads may interleave with a writer; that skew is accepted for
// the browse path.
type Spreadsheet struct {
	mutex  *Mutex
	orders *OrdersSheet
	users  *UsersSheet
}

// New creates a Spreadsheet over the given client and spreadsheet id.
// retryInterval and waitBudget tune lock acquisition; zero values select
// the defaults.
func New(client ValuesClient, spreadsheetID string, retryInterval, waitBudget time.Duration) *Spreadsheet {
	return &Spreadsheet{
		mutex:  NewMutex(client, spreadsheetID, retryInterval, waitBudget),
		orders: NewOrdersSheet(client, spreadsheetID),
		users:  NewUsersSheet(client, spreadsheetID),
	}
}

// GetUser looks up a member profile.
func (s *Spreadsheet) GetUser(ctx context.Context, userID string) (model.User, error) {
	return s.users.GetUser(ctx, userID)
}

// GetProducts returns the product map as seen by userID. Lock-free.
func (s *Spreadsheet) GetProducts(ctx context.Context, userID string) (map[int]*model.Product, error) {
	products, _, err := s.orders.GetForUser(ctx, userID)
	return products, err
}

// SetProductOrder sets userID's order for productID to quantity, holding
// the spreadsheet lock for the read-check-write cycle. The lock is released
// on every exit path, including when the request context has already been
// canceled.
func (s *Spreadsheet) SetProductOrder(ctx context.Context, userID string, productID, quantity int) (map[int]*model.Product, error) {
	if err := s.mutex.Lock(ctx, userID); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.mutex.Unlock(context.WithoutCancel(ctx)); err != nil {
			obs.Logger.Error("mutex_unlock_failed", "user_id", userID, "error", err)
		}
	}()

	return s.orders.SetOrdered(ctx, userID, productID, quantity)
}
