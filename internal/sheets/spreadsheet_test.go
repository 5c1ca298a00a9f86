package sheets

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestSpreadsheet(fc *fakeClient) *Spreadsheet {
	return New(fc, "ssid", time.Millisecond, 20*time.Millisecond)
}

func TestGetProductsBypassesLock(t *testing.T) {
	fc := newFakeClient()
	fc.setOrders(
		[]any{7, 3, 5},
		[]any{"ashley@friskygirlfarm.com", 4, 0, 1},
		[]any{"ellen@friskygirlfarm.com", 3, 2, 0},
	)
	ss := newTestSpreadsheet(fc)

	products, err := ss.GetProducts(context.Background(), "ashley@friskygirlfarm.com")
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(products) != 3 || products[1].Ordered != 4 {
		t.Fatalf("unexpected products %v", products)
	}
	if n := len(fc.callsOf("append")) + len(fc.callsOf("clear")); n != 0 {
		t.Fatalf("read path must not touch the mutex, saw %d calls", n)
	}
}

func TestSetProductOrderLocksAroundWrite(t *testing.T) {
	fc := newFakeClient()
	fc.setMutexUnlocked()
	fc.setOrders(
		[]any{7, 3, 5},
		[]any{"uid2", 4, 0, 1},
		[]any{"ashley@friskygirlfarm.com", 3, 2, 0},
	)
	ss := newTestSpreadsheet(fc)

	products, err := ss.SetProductOrder(context.Background(), "ashley@friskygirlfarm.com", 3, 3)
	if err != nil {
		t.Fatalf("SetProductOrder: %v", err)
	}
	if products[3].Ordered != 3 {
		t.Fatalf("product 3: %+v", products[3])
	}

	// Lock append, ledger read, cell write, unlock clear, in that order.
	var seq []string
	for _, c := range fc.calls {
		seq = append(seq, c.method+" "+c.rng)
	}
	want := []string{"append Mutex!A1", "get Orders", "update Orders!D7", "clear Mutex!A2:B2"}
	if len(seq) != len(want) {
		t.Fatalf("calls %v", seq)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("calls %v, want %v", seq, want)
		}
	}
}

func TestSetProductOrderUnlocksOnFailure(t *testing.T) {
	fc := newFakeClient()
	fc.setMutexUnlocked()
	fc.setOrders(
		[]any{7, 3, 5},
		[]any{"ashley@friskygirlfarm.com", 4, 0, 1},
	)
	ss := newTestSpreadsheet(fc)

	_, err := ss.SetProductOrder(context.Background(), "ashley@friskygirlfarm.com", 2, 100)
	var serr *Error
	if !errors.As(err, &serr) || serr.Code != CodeQuantityNotAvailable {
		t.Fatalf("expected quantityNotAvailable, got %v", err)
	}
	clears := fc.callsOf("clear")
	if len(clears) != 1 || clears[0].rng != "Mutex!A2:B2" {
		t.Fatalf("lock must be released on failure, clears %v", clears)
	}
	if len(fc.callsOf("update")) != 0 {
		t.Fatalf("failed check must not write")
	}
}

func TestSetProductOrderFailsWhenLocked(t *testing.T) {
	fc := newFakeClient()
	fc.setMutexLocked()
	ss := newTestSpreadsheet(fc)

	_, err := ss.SetProductOrder(context.Background(), "ashley@friskygirlfarm.com", 1, 1)
	var serr *Error
	if !errors.As(err, &serr) || serr.Code != CodeSpreadsheetLocked {
		t.Fatalf("expected spreadsheetLocked, got %v", err)
	}
	if n := len(fc.callsOf("get")); n != 0 {
		t.Fatalf("ledger must not be read without the lock, saw %d reads", n)
	}
}

func TestSetProductOrderRace(t *testing.T) {
	// B's first append lands one row past the slot; it cleans up, retries
	// and wins once the slot frees up.
	fc := newFakeClient()
	fc.appendQueue["Mutex!A1"] = []appendResult{
		{rng: "Mutex!A3:B3"},
		{rng: "Mutex!A2:B2"},
	}
	fc.setOrders(
		[]any{7, 3, 5},
		[]any{"ashley@friskygirlfarm.com", 4, 0, 1},
	)
	ss := newTestSpreadsheet(fc)

	products, err := ss.SetProductOrder(context.Background(), "ashley@friskygirlfarm.com", 1, 2)
	if err != nil {
		t.Fatalf("SetProductOrder: %v", err)
	}
	if products[1].Ordered != 2 {
		t.Fatalf("product 1: %+v", products[1])
	}
	clears := fc.callsOf("clear")
	if len(clears) != 2 {
		t.Fatalf("expected loser cleanup plus unlock, got %v", clears)
	}
	if clears[0].rng != "Mutex!A3:B3" || clears[1].rng != "Mutex!A2:B2" {
		t.Fatalf("unexpected clears %v", clears)
	}
}

func TestSpreadsheetGetUser(t *testing.T) {
	fc := newFakeClient()
	fc.setUsers()
	ss := newTestSpreadsheet(fc)

	u, err := ss.GetUser(context.Background(), "ellen@friskygirlfarm.com")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Name != "Ellen Scheffer" || u.Balance != 25.0 {
		t.Fatalf("unexpected user %+v", u)
	}
}
