package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hargabyte/churn/internal/model"
)

// testStore creates a temporary store for testing.
func testStore(t *testing.T) (*Store, func()) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "churn-store-test-*")
	if err != nil {
		t.Fatalf("create temp dir: %v", err)
	}

	store, err := Open(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("open store: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

func sampleCustomers() []model.Customer {
	return []model.Customer{
		{
			CustomerID:       "9237-HQITU",
			Gender:           model.GenderFemale,
			SeniorCitizen:    false,
			Partner:          model.No,
			TenureMonths:     2,
			Contract:         model.ContractMonthToMonth,
			InternetService:  model.InternetFiber,
			PaymentMethod:    model.PaymentElectronicCheck,
			OnlineSecurity:   model.ServiceNo,
			OnlineBackup:     model.ServiceNo,
			DeviceProtection: model.ServiceNo,
			TechSupport:      model.ServiceNo,
			StreamingTV:      model.ServiceNo,
			StreamingMovies:  model.ServiceNo,
			MonthlyCharges:   70.7,
			TotalCharges:     151.65,
			Churn:            model.Yes,
		},
		{
			CustomerID:       "5575-GNVDE",
			Gender:           model.GenderMale,
			SeniorCitizen:    true,
			Partner:          model.Yes,
			TenureMonths:     34,
			Contract:         model.ContractOneYear,
			InternetService:  model.InternetDSL,
			PaymentMethod:    model.PaymentMailedCheck,
			OnlineSecurity:   model.ServiceYes,
			OnlineBackup:     model.ServiceNo,
			DeviceProtection: model.ServiceYes,
			TechSupport:      model.ServiceNo,
			StreamingTV:      model.ServiceNo,
			StreamingMovies:  model.ServiceNo,
			MonthlyCharges:   56.95,
			TotalCharges:     1889.5,
			Churn:            model.No,
		},
		{
			CustomerID:       "7590-VHVEG",
			Gender:           model.GenderFemale,
			SeniorCitizen:    false,
			Partner:          model.Yes,
			TenureMonths:     1,
			Contract:         model.ContractMonthToMonth,
			InternetService:  model.InternetNone,
			PaymentMethod:    model.PaymentBankTransfer,
			OnlineSecurity:   model.ServiceNoInternet,
			OnlineBackup:     model.ServiceNoInternet,
			DeviceProtection: model.ServiceNoInternet,
			TechSupport:      model.ServiceNoInternet,
			StreamingTV:      model.ServiceNoInternet,
			StreamingMovies:  model.ServiceNoInternet,
			MonthlyCharges:   19.85,
			TotalCharges:     19.85,
			Churn:            model.No,
		},
	}
}

func TestOpen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "churn-store-test-*")
	if err != nil {
		t.Fatalf("create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	churnDir := filepath.Join(tmpDir, ".churn")

	// Open should create the .churn directory
	store, err := Open(churnDir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	// Verify directory was created
	if _, err := os.Stat(churnDir); os.IsNotExist(err) {
		t.Error("expected .churn directory to be created")
	}

	// Verify Dolt database directory exists
	dbPath := filepath.Join(churnDir, "warehouse")
	info, err := os.Stat(dbPath)
	if os.IsNotExist(err) {
		t.Error("expected warehouse directory to be created")
	} else if !info.IsDir() {
		t.Error("expected warehouse to be a directory (Dolt repo)")
	}

	// Verify Path() returns correct path
	if store.Path() != dbPath {
		t.Errorf("expected path %s, got %s", dbPath, store.Path())
	}
}

func TestStore_Close(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	// Close should succeed
	if err := store.Close(); err != nil {
		t.Errorf("close store: %v", err)
	}

	// Closing nil db should not panic
	store.db = nil
	if err := store.Close(); err != nil {
		t.Errorf("close nil db: %v", err)
	}
}

func TestReplaceAndLoadCustomers(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	if err := store.ReplaceCustomers(sampleCustomers()); err != nil {
		t.Fatalf("replace customers: %v", err)
	}

	records, err := store.LoadCustomers()
	if err != nil {
		t.Fatalf("load customers: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// Loaded records are ordered by customer_id
	wantOrder := []string{"5575-GNVDE", "7590-VHVEG", "9237-HQITU"}
	for i, id := range wantOrder {
		if records[i].CustomerID != id {
			t.Errorf("record %d: expected %s, got %s", i, id, records[i].CustomerID)
		}
	}

	// Full round-trip of one record
	got := records[0]
	if got.Gender != model.GenderMale {
		t.Errorf("expected gender %s, got %s", model.GenderMale, got.Gender)
	}
	if !got.SeniorCitizen {
		t.Error("expected senior_citizen true")
	}
	if got.Partner != model.Yes {
		t.Errorf("expected partner Yes, got %s", got.Partner)
	}
	if got.TenureMonths != 34 {
		t.Errorf("expected tenure 34, got %d", got.TenureMonths)
	}
	if got.Contract != model.ContractOneYear {
		t.Errorf("expected contract %s, got %s", model.ContractOneYear, got.Contract)
	}
	if got.InternetService != model.InternetDSL {
		t.Errorf("expected internet %s, got %s", model.InternetDSL, got.InternetService)
	}
	if got.PaymentMethod != model.PaymentMailedCheck {
		t.Errorf("expected payment %s, got %s", model.PaymentMailedCheck, got.PaymentMethod)
	}
	if got.OnlineSecurity != model.ServiceYes {
		t.Errorf("expected online_security Yes, got %s", got.OnlineSecurity)
	}
	if got.MonthlyCharges != 56.95 {
		t.Errorf("expected monthly_charges 56.95, got %g", got.MonthlyCharges)
	}
	if got.TotalCharges != 1889.5 {
		t.Errorf("expected total_charges 1889.5, got %g", got.TotalCharges)
	}
	if got.Churn != model.No {
		t.Errorf("expected churn No, got %s", got.Churn)
	}
}

func TestReplaceCustomersOverwrites(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	if err := store.ReplaceCustomers(sampleCustomers()); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	// Replace with a single record
	if err := store.ReplaceCustomers(sampleCustomers()[:1]); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	count, err := store.CountCustomers()
	if err != nil {
		t.Fatalf("count customers: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 record after replace, got %d", count)
	}

	records, err := store.LoadCustomers()
	if err != nil {
		t.Fatalf("load customers: %v", err)
	}
	if records[0].CustomerID != "9237-HQITU" {
		t.Errorf("expected 9237-HQITU, got %s", records[0].CustomerID)
	}
}

func TestReplaceCustomersEmpty(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	if err := store.ReplaceCustomers(sampleCustomers()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// Replacing with no records clears the table
	if err := store.ReplaceCustomers(nil); err != nil {
		t.Fatalf("replace with nil: %v", err)
	}

	count, err := store.CountCustomers()
	if err != nil {
		t.Fatalf("count customers: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty table, got %d records", count)
	}
}

func TestCountCustomersEmpty(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	count, err := store.CountCustomers()
	if err != nil {
		t.Fatalf("count customers: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 records in fresh store, got %d", count)
	}
}

func TestLastImportEmpty(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	rec, err := store.LastImport()
	if err != nil {
		t.Fatalf("last import: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil for fresh store, got %+v", rec)
	}
}

func TestRecordImport(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	first := ImportRecord{
		Source:       "first.csv",
		RowCount:     10,
		WarningCount: 0,
		Checksum:     "aaaa",
	}
	if err := store.RecordImport(first); err != nil {
		t.Fatalf("record first import: %v", err)
	}

	second := ImportRecord{
		Source:       "second.csv",
		RowCount:     20,
		WarningCount: 3,
		Checksum:     "bbbb",
	}
	if err := store.RecordImport(second); err != nil {
		t.Fatalf("record second import: %v", err)
	}

	last, err := store.LastImport()
	if err != nil {
		t.Fatalf("last import: %v", err)
	}
	if last == nil {
		t.Fatal("expected an import record")
	}

	if last.Source != "second.csv" {
		t.Errorf("expected source second.csv, got %s", last.Source)
	}
	if last.RowCount != 20 {
		t.Errorf("expected row_count 20, got %d", last.RowCount)
	}
	if last.WarningCount != 3 {
		t.Errorf("expected warning_count 3, got %d", last.WarningCount)
	}
	if last.Checksum != "bbbb" {
		t.Errorf("expected checksum bbbb, got %s", last.Checksum)
	}
	if last.ImportedAt.IsZero() {
		t.Error("expected imported_at to be stamped")
	}

	count, err := store.CountImports()
	if err != nil {
		t.Fatalf("count imports: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 import records, got %d", count)
	}
}
