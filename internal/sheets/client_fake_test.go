package sheets

import (
	"context"
	"fmt"
)

// fakeClient is a scripted ValuesClient. Responses are keyed by the range
// (and major dimension for reads) the production code is expected to ask
// for; every call is recorded so tests can assert on exactly which ranges
// were touched and in what order.
type fakeClient struct {
	getValues map[string][][]any
	getErrs   map[string]error

	// appendQueue holds per-anchor queues of scripted append outcomes;
	// appendDefault is returned once a queue runs dry.
	appendQueue   map[string][]appendResult
	appendDefault map[string]appendResult

	updateErr error
	clearErr  error

	calls []fakeCall
}

type appendResult struct {
	rng string
	err error
}

type fakeCall struct {
	method string
	rng    string
	dim    string
	values [][]any
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		getValues:     make(map[string][][]any),
		getErrs:       make(map[string]error),
		appendQueue:   make(map[string][]appendResult),
		appendDefault: make(map[string]appendResult),
	}
}

func (f *fakeClient) Get(_ context.Context, _, rng, dim string) ([][]any, error) {
	f.calls = append(f.calls, fakeCall{method: "get", rng: rng, dim: dim})
	key := rng + "|" + dim
	if err := f.getErrs[key]; err != nil {
		return nil, err
	}
	if v, ok := f.getValues[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("unexpected get %s", key)
}

func (f *fakeClient) Append(_ context.Context, _, rng string, values [][]any) (string, error) {
	f.calls = append(f.calls, fakeCall{method: "append", rng: rng, values: values})
	if q := f.appendQueue[rng]; len(q) > 0 {
		f.appendQueue[rng] = q[1:]
		return q[0].rng, q[0].err
	}
	if r, ok := f.appendDefault[rng]; ok {
		return r.rng, r.err
	}
	return "", fmt.Errorf("unexpected append %s", rng)
}

func (f *fakeClient) Update(_ context.Context, _, rng string, values [][]any) error {
	f.calls = append(f.calls, fakeCall{method: "update", rng: rng, values: values})
	return f.updateErr
}

func (f *fakeClient) Clear(_ context.Context, _, rng string) error {
	f.calls = append(f.calls, fakeCall{method: "clear", rng: rng})
	return f.clearErr
}

func (f *fakeClient) callsOf(method string) []fakeCall {
	var out []fakeCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

// Fixture helpers mirroring the production Orders/Users layout.

var fixtureNames = []any{"Lettuce", "Kale", "Spicy Greens"}
var fixturePrices = []any{0.15, 0.85, 15.0}
var fixtureImages = []any{
	"http://lettuce.com/image.jpg",
	"http://kale.com/image.jpg",
	"http://spicy-greens.com/image.jpg",
}

// wireCell converts a fixture value to the type the real API would hand
// back for it: numeric cells arrive as float64, everything else as-is.
func wireCell(v any) any {
	if i, ok := v.(int); ok {
		return float64(i)
	}
	return v
}

// setOrders scripts the column-major Orders read. Each user is
// []any{userID, q1, q2, q3}; blank quantity cells are "". Totals are
// derived from the user rows, as the sheet formula would.
func (f *fakeClient) setOrders(limits []any, users ...[]any) {
	idColumn := []any{"", "price", "image", "limit", "total"}
	for _, u := range users {
		idColumn = append(idColumn, u[0])
	}

	columns := [][]any{idColumn}
	for p := 0; p < len(limits); p++ {
		total := 0
		for _, u := range users {
			total += cellInt(cellAt(u, p+1))
		}
		column := []any{fixtureNames[p], fixturePrices[p], fixtureImages[p], wireCell(limits[p]), float64(total)}
		for _, u := range users {
			column = append(column, wireCell(cellAt(u, p+1)))
		}
		columns = append(columns, column)
	}
	f.getValues["Orders|COLUMNS"] = columns
}

func (f *fakeClient) setUsers() {
	f.getValues["Users|ROWS"] = [][]any{
		{"email", "name", "location", "balance", "starting balance", "spent"},
		{"ellen@friskygirlfarm.com", "Ellen Scheffer", "Lake City", 25.0, 100.0, 75.0},
		{"ashley@friskygirlfarm.com ", "Ashley Wilson", "Wallingford", 45.0, 100.0, 55.0},
	}
}

func (f *fakeClient) setMutexUnlocked() {
	f.appendDefault["Mutex!A1"] = appendResult{rng: "Mutex!A2:B2"}
}

func (f *fakeClient) setMutexLocked() {
	f.appendDefault["Mutex!A1"] = appendResult{rng: "Mutex!A3:B3"}
}
