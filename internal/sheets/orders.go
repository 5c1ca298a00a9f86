package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/farmcoop/order-service/internal/model"
)

const ordersSheetName = "Orders"

// Fixed row roles in the Orders sheet. Column 0 holds user ids; each later
// column is one product, and its 0-based offset is the product id.
const (
	namesRowIndex  = 0
	pricesRowIndex = 1
	imagesRowIndex = 2
	limitsRowIndex = 3
	// totalsRowIndex holds per-product totals derived by a sheet formula.
	// The ledger reads it but must never write it.
	totalsRowIndex    = 4
	firstUserRowIndex = 5
)

// OrdersSheet reads and mutates the current week's orders. Mutations are
// only safe under the spreadsheet Mutex; the Spreadsheet facade enforces
// that.
type OrdersSheet struct {
	sheet
}

// NewOrdersSheet creates an OrdersSheet for the given spreadsheet.
func NewOrdersSheet(client ValuesClient, spreadsheetID string) *OrdersSheet {
	return &OrdersSheet{sheet: sheet{client: client, spreadsheetID: spreadsheetID, name: ordersSheetName}}
}

// GetForUser reads the whole Orders sheet and computes the product map as
// seen by userID. The returned row index is the 0-based position of the
// user's row within the user rows, or -1 if the user has not ordered yet.
//
// A product's Available is the limit minus everyone's total, plus back what
// this user already ordered (they may re-set their own order up to their
// prior claim plus the remaining headroom), or -1 when the product is
// unlimited. Products with a blank or zero limit are omitted entirely.
func (s *OrdersSheet) GetForUser(ctx context.Context, userID string) (map[int]*model.Product, int, error) {
	columns, err := s.getAll(ctx, "COLUMNS")
	if err != nil {
		var ge *googleapi.Error
		if errors.As(err, &ge) && ge.Code == http.StatusBadRequest {
			// The API reports a missing sheet as a bad range, which
			// here means ordering has not opened this week.
			return nil, 0, errOrdersNotOpen()
		}
		return nil, 0, err
	}

	userRowIndex := -1
	if len(columns) > 0 {
		for i := firstUserRowIndex; i < len(columns[0]); i++ {
			if cellString(columns[0][i]) == userID {
				userRowIndex = i - firstUserRowIndex
				break
			}
		}
	}

	products := make(map[int]*model.Product)
	for i, column := range columns {
		if i == 0 {
			continue
		}
		limitCell := cellAt(column, limitsRowIndex)
		if limitCell == nil || cellString(limitCell) == "" {
			continue
		}
		limit := cellInt(limitCell)
		if limit == 0 {
			continue
		}

		ordered := 0
		if userRowIndex != -1 {
			ordered = cellInt(cellAt(column, firstUserRowIndex+userRowIndex))
		}

		available := -1
		if limit > 0 {
			available = limit - cellInt(cellAt(column, totalsRowIndex)) + ordered
		}

		products[i] = &model.Product{
			ID:        i,
			Name:      cellString(cellAt(column, namesRowIndex)),
			ImageURL:  cellString(cellAt(column, imagesRowIndex)),
			Price:     cellFloat(cellAt(column, pricesRowIndex)),
			Available: available,
			Ordered:   ordered,
		}
	}

	return products, userRowIndex, nil
}

// SetOrdered sets the quantity of productID ordered by userID and returns
// the product map updated to reflect the change, without re-reading the
// sheet. All validation happens before any write; a failed call leaves the
// sheet untouched.
func (s *OrdersSheet) SetOrdered(ctx context.Context, userID string, productID, quantity int) (map[int]*model.Product, error) {
	if quantity < 0 {
		return nil, errNegativeQuantity()
	}

	products, userRowIndex, err := s.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, ok := products[productID]
	if !ok {
		return nil, errProductNotFound()
	}
	if product.Available != -1 && quantity > product.Available {
		return nil, errQuantityNotAvailable(product.Available)
	}

	if userRowIndex != -1 {
		// Overwrite just the one cell at the user row / product column
		// intersection. A1 rows are 1-based.
		rng := fmt.Sprintf("%s%d", ColumnLetter(productID), firstUserRowIndex+userRowIndex+1)
		if err := s.update(ctx, rng, [][]any{{quantity}}); err != nil {
			return nil, err
		}
	} else {
		// First order for this user: append a full row anchored at the
		// first user row. Append's first-free-row placement picks the
		// actual row; under the mutex that row cannot be stolen.
		maxID := 0
		for id := range products {
			if id > maxID {
				maxID = id
			}
		}
		row := make([]any, maxID+1)
		row[0] = userID
		for i := 1; i <= maxID; i++ {
			row[i] = 0
		}
		row[productID] = quantity
		if _, err := s.append(ctx, fmt.Sprintf("A%d", firstUserRowIndex+1), row); err != nil {
			return nil, err
		}
	}

	// Available is limit - total + ordered; the total moves in lockstep
	// with the user's own order, so only Ordered changes.
	product.Ordered = quantity
	return products, nil
}
