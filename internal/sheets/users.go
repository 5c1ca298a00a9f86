package sheets

import (
	"context"
	"strings"

	"github.com/farmcoop/order-service/internal/model"
)

const usersSheetName = "Users"

// Column roles in the Users sheet. Columns past balance are bookkeeping the
// service does not read.
const (
	emailColumnIndex    = 0
	nameColumnIndex     = 1
	locationColumnIndex = 2
	balanceColumnIndex  = 3
)

// UsersSheet reads member profiles.
type UsersSheet struct {
	sheet
}

// NewUsersSheet creates a UsersSheet for the given spreadsheet.
func NewUsersSheet(client ValuesClient, spreadsheetID string) *UsersSheet {
	return &UsersSheet{sheet: sheet{client: client, spreadsheetID: spreadsheetID, name: usersSheetName}}
}

// GetUser looks up a member by email. Emails are compared after trimming
// whitespace, since hand-maintained sheets pick up stray spaces.
func (s *UsersSheet) GetUser(ctx context.Context, userID string) (model.User, error) {
	rows, err := s.getAll(ctx, "ROWS")
	if err != nil {
		return model.User{}, err
	}

	want := strings.TrimSpace(userID)
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if strings.TrimSpace(cellString(cellAt(row, emailColumnIndex))) != want {
			continue
		}
		return model.User{
			Email:    strings.TrimSpace(cellString(cellAt(row, emailColumnIndex))),
			Name:     cellString(cellAt(row, nameColumnIndex)),
			Location: cellString(cellAt(row, locationColumnIndex)),
			Balance:  cellFloat(cellAt(row, balanceColumnIndex)),
		}, nil
	}
	return model.User{}, errUnknownUser()
}
