package reports

import "github.com/hargabyte/churn/internal/model"

// Dimension is a named grouping axis over customers. Values is the fixed
// enumeration order its categories appear in, which outranks any sort of
// the labels themselves. A bucketing of a numeric field is expressed as a
// Dimension whose Of computes the bucket label.
type Dimension struct {
	// Name is the column-style identifier of the dimension.
	Name string

	// Values is the fixed output order of the dimension's categories.
	Values []string

	// Of extracts the dimension value for a customer.
	Of func(model.Customer) string
}

// Churned is the positive-label predicate used by every churn-rate report.
func Churned(c model.Customer) bool {
	return c.Churned()
}

// Standard grouping dimensions over the enum fields of the record.
var (
	// DimChurn groups by the churn label.
	DimChurn = Dimension{
		Name:   "churn",
		Values: enumStrings(model.YesNoValues),
		Of:     func(c model.Customer) string { return string(c.Churn) },
	}

	// DimGender groups by gender.
	DimGender = Dimension{
		Name:   "gender",
		Values: enumStrings(model.GenderValues),
		Of:     func(c model.Customer) string { return string(c.Gender) },
	}

	// DimSenior groups by the senior citizen flag, labelled Yes/No.
	DimSenior = Dimension{
		Name:   "senior_citizen",
		Values: enumStrings(model.YesNoValues),
		Of: func(c model.Customer) string {
			if c.SeniorCitizen {
				return string(model.Yes)
			}
			return string(model.No)
		},
	}

	// DimPartner groups by the partner flag.
	DimPartner = Dimension{
		Name:   "partner",
		Values: enumStrings(model.YesNoValues),
		Of:     func(c model.Customer) string { return string(c.Partner) },
	}

	// DimContract groups by contract term.
	DimContract = Dimension{
		Name:   "contract",
		Values: enumStrings(model.ContractValues),
		Of:     func(c model.Customer) string { return string(c.Contract) },
	}

	// DimInternetService groups by internet service type.
	DimInternetService = Dimension{
		Name:   "internet_service",
		Values: enumStrings(model.InternetServiceValues),
		Of:     func(c model.Customer) string { return string(c.InternetService) },
	}

	// DimPaymentMethod groups by payment method.
	DimPaymentMethod = Dimension{
		Name:   "payment_method",
		Values: enumStrings(model.PaymentMethodValues),
		Of:     func(c model.Customer) string { return string(c.PaymentMethod) },
	}
)

// TenureBuckets groups tenure into the documented month ranges. Boundaries
// are inclusive on the upper edge: a tenure of exactly 12 lands in
// "0-12 months".
var TenureBuckets = Dimension{
	Name:   "tenure",
	Values: []string{"0-12 months", "12-24 months", "24-48 months", "48+ months"},
	Of: func(c model.Customer) string {
		switch {
		case c.TenureMonths <= 12:
			return "0-12 months"
		case c.TenureMonths <= 24:
			return "12-24 months"
		case c.TenureMonths <= 48:
			return "24-48 months"
		default:
			return "48+ months"
		}
	},
}

// MonthlyChargesBuckets groups monthly charges into price bands, upper
// edge inclusive.
var MonthlyChargesBuckets = Dimension{
	Name:   "monthly_charges",
	Values: []string{"Low", "Medium", "High", "Premium"},
	Of: func(c model.Customer) string {
		switch {
		case c.MonthlyCharges <= 50:
			return "Low"
		case c.MonthlyCharges <= 75:
			return "Medium"
		case c.MonthlyCharges <= 100:
			return "High"
		default:
			return "Premium"
		}
	},
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
