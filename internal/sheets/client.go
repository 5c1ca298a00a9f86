// Package sheets implements the co-op's order ledger on top of a Google
// spreadsheet: a Users sheet for member profiles, an Orders sheet holding
// the current week's products and per-user quantities, and a Mutex sheet
// used as a distributed lock so concurrent orders cannot oversell.
package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ValuesClient is the subset of the Sheets values API this package needs.
// It is injected everywhere so tests can substitute a scripted fake.
type ValuesClient interface {
	// Get reads a whole range. majorDimension is "ROWS" or "COLUMNS".
	Get(ctx context.Context, spreadsheetID, rng, majorDimension string) ([][]any, error)
	// Append writes values into the first free row at or after rng and
	// returns the sheet-qualified range the values actually occupied.
	Append(ctx context.Context, spreadsheetID, rng string, values [][]any) (string, error)
	// Update overwrites exactly the given range.
	Update(ctx context.Context, spreadsheetID, rng string, values [][]any) error
	// Clear empties the given range.
	Clear(ctx context.Context, spreadsheetID, rng string) error
}

type googleClient struct {
	svc *gsheets.Service
}

// NewClient builds a ValuesClient backed by the Google Sheets API,
// authenticated as a service account.
func NewClient(ctx context.Context, email, privateKey string) (ValuesClient, error) {
	conf := &jwt.Config{
		Email:      email,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{gsheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	svc, err := gsheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &googleClient{svc: svc}, nil
}

func (c *googleClient) Get(ctx context.Context, spreadsheetID, rng, majorDimension string) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).
		MajorDimension(majorDimension).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *googleClient) Append(ctx context.Context, spreadsheetID, rng string, values [][]any) (string, error) {
	resp, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, rng, &gsheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return resp.Updates.UpdatedRange, nil
}

func (c *googleClient) Update(ctx context.Context, spreadsheetID, rng string, values [][]any) error {
	_, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, rng, &gsheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	return err
}

func (c *googleClient) Clear(ctx context.Context, spreadsheetID, rng string) error {
	_, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, rng, &gsheets.ClearValuesRequest{}).
		Context(ctx).Do()
	return err
}
