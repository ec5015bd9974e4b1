package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/hargabyte/churn/internal/model"
)

// Checksum returns a hex digest identifying the dataset contents. Rows are
// hashed in customer_id order, so the same records yield the same digest
// regardless of their order in the source file. The digest keys cached
// risk scores and report runs to the dataset they were computed from.
func Checksum(records []model.Customer) string {
	sorted := make([]model.Customer, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CustomerID < sorted[j].CustomerID
	})

	h := sha256.New()
	for _, c := range sorted {
		fmt.Fprintf(h, "%s|%s|%t|%s|%d|%s|%s|%s|%s|%s|%s|%s|%s|%s|%g|%g|%s\n",
			c.CustomerID, c.Gender, c.SeniorCitizen, c.Partner,
			c.TenureMonths, c.Contract, c.InternetService, c.PaymentMethod,
			c.OnlineSecurity, c.OnlineBackup, c.DeviceProtection,
			c.TechSupport, c.StreamingTV, c.StreamingMovies,
			c.MonthlyCharges, c.TotalCharges, c.Churn)
	}
	return hex.EncodeToString(h.Sum(nil))
}
