package raffle

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fundabenefica/raffle-api/internal/models"
	"github.com/fundabenefica/raffle-api/internal/settings"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRaffleTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:raffle_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	errMigrate := db.AutoMigrate(
		&models.Setting{},
		&models.PaymentMethod{},
		&models.PrizeImage{},
		&models.Order{},
		&models.OrderNumber{},
		&models.SoldNumber{},
	)
	if errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	if errSet := settings.Set(context.Background(), db, settings.PrizeDigitsKey, "4"); errSet != nil {
		t.Fatalf("set digits: %v", errSet)
	}
	return db
}

func testOrderInput(numbers ...string) CreateOrderInput {
	return CreateOrderInput{
		Name:    "Maria Perez",
		Email:   "maria@example.com",
		Phone:   "+58 412-555-1234",
		Numbers: numbers,
		Qty:     len(numbers),
		Total:   float64(len(numbers)) * 10,
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupRaffleTestDB(t)
	ctx := context.Background()

	in := testOrderInput("1234")
	in.Qty = 2
	if _, errCreate := CreateOrder(ctx, db, in); !IsValidation(errCreate) {
		t.Fatalf("qty mismatch error = %v, want validation error", errCreate)
	}

	in = testOrderInput("123")
	if _, errCreate := CreateOrder(ctx, db, in); !IsValidation(errCreate) {
		t.Fatalf("wrong digit count error = %v, want validation error", errCreate)
	}

	in = testOrderInput("12a4")
	if _, errCreate := CreateOrder(ctx, db, in); !IsValidation(errCreate) {
		t.Fatalf("non-numeric error = %v, want validation error", errCreate)
	}

	in = testOrderInput("1234", "1234")
	if _, errCreate := CreateOrder(ctx, db, in); !IsValidation(errCreate) {
		t.Fatalf("duplicate pick error = %v, want validation error", errCreate)
	}

	in = testOrderInput("1234")
	in.Name = ""
	if _, errCreate := CreateOrder(ctx, db, in); !IsValidation(errCreate) {
		t.Fatalf("missing name error = %v, want validation error", errCreate)
	}
}

func TestCreateOrderRejectsSoldNumbers(t *testing.T) {
	db := setupRaffleTestDB(t)
	ctx := context.Background()

	orderID, errCreate := CreateOrder(ctx, db, testOrderInput("1111", "2222"))
	if errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}
	if _, errConfirm := ConfirmOrder(ctx, db, orderID); errConfirm != nil {
		t.Fatalf("confirm: %v", errConfirm)
	}

	_, errTaken := CreateOrder(ctx, db, testOrderInput("2222", "3333"))
	if !IsValidation(errTaken) {
		t.Fatalf("sold number error = %v, want validation error", errTaken)
	}
	if !strings.Contains(errTaken.Error(), "2222") {
		t.Fatalf("error should name the taken number: %v", errTaken)
	}
}

func TestGeneratedOrderIDsUniqueUnderConcurrency(t *testing.T) {
	t.Parallel()

	const n = 200
	var mu sync.Mutex
	ids := make(map[string]struct{}, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, errID := generateOrderID()
			if errID != nil {
				t.Errorf("generate: %v", errID)
				return
			}
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(ids) != n {
		t.Fatalf("generated %d unique ids, want %d", len(ids), n)
	}
	for id := range ids {
		if !strings.HasPrefix(id, "ORD-") {
			t.Fatalf("id %q missing ORD- prefix", id)
		}
	}
}

func TestConfirmOrderIdempotentAndMarksSold(t *testing.T) {
	db := setupRaffleTestDB(t)
	ctx := context.Background()

	orderID, errCreate := CreateOrder(ctx, db, testOrderInput("4321", "8765"))
	if errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}

	link, errConfirm := ConfirmOrder(ctx, db, orderID)
	if errConfirm != nil {
		t.Fatalf("confirm: %v", errConfirm)
	}
	if !strings.HasPrefix(link, "https://wa.me/584125551234?text=") {
		t.Fatalf("unexpected whatsapp link: %s", link)
	}
	if !strings.Contains(link, orderID) {
		t.Fatalf("link missing order id: %s", link)
	}

	// Second confirm must not duplicate sold rows.
	if _, errConfirm = ConfirmOrder(ctx, db, orderID); errConfirm != nil {
		t.Fatalf("second confirm: %v", errConfirm)
	}

	sold, errSold := ListSold(ctx, db)
	if errSold != nil {
		t.Fatalf("list sold: %v", errSold)
	}
	if len(sold) != 2 {
		t.Fatalf("sold count = %d, want 2", len(sold))
	}

	confirmed, errList := ListOrders(ctx, db, models.OrderStatusConfirmed)
	if errList != nil {
		t.Fatalf("list confirmed: %v", errList)
	}
	if len(confirmed) != 1 || confirmed[0].OrderID != orderID {
		t.Fatalf("confirmed list = %+v", confirmed)
	}
	if len(confirmed[0].Numbers) != 2 || confirmed[0].Numbers[0] != "4321" {
		t.Fatalf("numbers lost their order: %v", confirmed[0].Numbers)
	}
}

func TestConfirmUnknownOrderReturnsNotFound(t *testing.T) {
	db := setupRaffleTestDB(t)

	_, errConfirm := ConfirmOrder(context.Background(), db, "ORD-0-NOPE")
	if errConfirm != ErrOrderNotFound {
		t.Fatalf("confirm unknown = %v, want ErrOrderNotFound", errConfirm)
	}
}

func TestRejectOrderDeletesAndIsIdempotent(t *testing.T) {
	db := setupRaffleTestDB(t)
	ctx := context.Background()

	orderID, errCreate := CreateOrder(ctx, db, testOrderInput("9999"))
	if errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}

	if errReject := RejectOrder(ctx, db, orderID); errReject != nil {
		t.Fatalf("reject: %v", errReject)
	}
	pending, errList := ListOrders(ctx, db, models.OrderStatusPending)
	if errList != nil {
		t.Fatalf("list pending: %v", errList)
	}
	if len(pending) != 0 {
		t.Fatalf("order survived rejection: %+v", pending)
	}
	var numberCount int64
	db.Model(&models.OrderNumber{}).Count(&numberCount)
	if numberCount != 0 {
		t.Fatalf("order numbers survived rejection: %d", numberCount)
	}

	// Rejecting a nonexistent id is a no-op.
	if errReject := RejectOrder(ctx, db, orderID); errReject != nil {
		t.Fatalf("second reject: %v", errReject)
	}
	if errReject := RejectOrder(ctx, db, "ORD-0-NOPE"); errReject != nil {
		t.Fatalf("reject unknown: %v", errReject)
	}

	sold, _ := ListSold(ctx, db)
	if len(sold) != 0 {
		t.Fatalf("rejection touched the sold set: %v", sold)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := setupRaffleTestDB(t)
	ctx := context.Background()

	first, errCreate := CreateOrder(ctx, db, testOrderInput("0001"))
	if errCreate != nil {
		t.Fatalf("create first: %v", errCreate)
	}
	// Force distinct creation timestamps.
	if errBackdate := db.Model(&models.Order{}).
		Where("order_id = ?", first).
		Update("created_at", time.Now().Add(-time.Hour)).Error; errBackdate != nil {
		t.Fatalf("backdate: %v", errBackdate)
	}
	second, errCreate := CreateOrder(ctx, db, testOrderInput("0002"))
	if errCreate != nil {
		t.Fatalf("create second: %v", errCreate)
	}

	pending, errList := ListOrders(ctx, db, models.OrderStatusPending)
	if errList != nil {
		t.Fatalf("list: %v", errList)
	}
	if len(pending) != 2 || pending[0].OrderID != second || pending[1].OrderID != first {
		t.Fatalf("orders not newest first: %+v", pending)
	}
}

func TestFindByNumberStatusTransitions(t *testing.T) {
	db := setupRaffleTestDB(t)
	ctx := context.Background()

	lookup, errFind := FindByNumber(ctx, db, "7777")
	if errFind != nil {
		t.Fatalf("find available: %v", errFind)
	}
	if lookup.Found || lookup.Status != NumberStatusAvailable {
		t.Fatalf("fresh number lookup = %+v, want available", lookup)
	}

	orderID, errCreate := CreateOrder(ctx, db, testOrderInput("7777"))
	if errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}

	lookup, errFind = FindByNumber(ctx, db, "7777")
	if errFind != nil {
		t.Fatalf("find pending: %v", errFind)
	}
	if !lookup.Found || lookup.Status != NumberStatusPending || lookup.Order == nil {
		t.Fatalf("pending lookup = %+v", lookup)
	}
	if lookup.Order.OrderID != orderID {
		t.Fatalf("pending lookup wrong order: %s", lookup.Order.OrderID)
	}

	if _, errConfirm := ConfirmOrder(ctx, db, orderID); errConfirm != nil {
		t.Fatalf("confirm: %v", errConfirm)
	}

	lookup, errFind = FindByNumber(ctx, db, "7777")
	if errFind != nil {
		t.Fatalf("find confirmed: %v", errFind)
	}
	if !lookup.Found || lookup.Status != NumberStatusConfirmed || lookup.Order == nil {
		t.Fatalf("confirmed lookup = %+v", lookup)
	}
	if lookup.Order.Status != models.OrderStatusConfirmed {
		t.Fatalf("owning order status = %s", lookup.Order.Status)
	}
}

func TestComputeStats(t *testing.T) {
	db := setupRaffleTestDB(t)
	ctx := context.Background()

	empty, errStats := ComputeStats(ctx, db)
	if errStats != nil {
		t.Fatalf("stats: %v", errStats)
	}
	if empty.TotalRevenue != 0 {
		t.Fatalf("empty revenue = %v, want 0", empty.TotalRevenue)
	}

	for _, tc := range []struct {
		number string
		total  float64
		final  bool
	}{
		{"1000", 10.0, true},
		{"2000", 15.0, true},
		{"3000", 20.0, false},
	} {
		in := testOrderInput(tc.number)
		in.Total = tc.total
		orderID, errCreate := CreateOrder(ctx, db, in)
		if errCreate != nil {
			t.Fatalf("create %s: %v", tc.number, errCreate)
		}
		if tc.final {
			if _, errConfirm := ConfirmOrder(ctx, db, orderID); errConfirm != nil {
				t.Fatalf("confirm %s: %v", tc.number, errConfirm)
			}
		}
	}

	stats, errStats := ComputeStats(ctx, db)
	if errStats != nil {
		t.Fatalf("stats: %v", errStats)
	}
	if stats.ConfirmedCount != 2 || stats.PendingCount != 1 || stats.SoldCount != 2 {
		t.Fatalf("counts = %+v", stats)
	}
	if stats.TotalRevenue != 25.0 {
		t.Fatalf("revenue = %v, want 25.0", stats.TotalRevenue)
	}
}

func TestResetRestoresDefaultsAndKeepsPassword(t *testing.T) {
	db := setupRaffleTestDB(t)
	ctx := context.Background()

	if errSeed := settings.Seed(ctx, db); errSeed != nil {
		t.Fatalf("seed: %v", errSeed)
	}
	orderID, errCreate := CreateOrder(ctx, db, testOrderInput("1234"))
	if errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}
	if _, errConfirm := ConfirmOrder(ctx, db, orderID); errConfirm != nil {
		t.Fatalf("confirm: %v", errConfirm)
	}
	if errAdd := AddImage(ctx, db, "data:image/png;base64,AAAA", 0); errAdd != nil {
		t.Fatalf("add image: %v", errAdd)
	}

	if errReset := Reset(ctx, db); errReset != nil {
		t.Fatalf("reset: %v", errReset)
	}

	var orderCount, soldCount, imageCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.SoldNumber{}).Count(&soldCount)
	db.Model(&models.PrizeImage{}).Count(&imageCount)
	if orderCount != 0 || soldCount != 0 || imageCount != 0 {
		t.Fatalf("reset left rows: orders=%d sold=%d images=%d", orderCount, soldCount, imageCount)
	}

	title, _, _ := settings.Get(ctx, db, settings.PrizeTitleKey)
	if title != "" {
		t.Fatalf("title = %q, want empty after reset", title)
	}
	digits, _, _ := settings.Get(ctx, db, settings.PrizeDigitsKey)
	if digits != settings.DefaultPrizeDigits {
		t.Fatalf("digits = %q, want %q", digits, settings.DefaultPrizeDigits)
	}

	match, errVerify := settings.VerifyAdminPassword(ctx, db, settings.DefaultAdminPassword)
	if errVerify != nil || !match {
		t.Fatalf("admin password did not survive reset: match=%v err=%v", match, errVerify)
	}
}
