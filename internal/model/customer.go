// Package model defines the customer record and the enumerated domains of
// its fields. Records are immutable once loaded: every report reads the same
// slice and nothing in this repository creates, mutates, or deletes a row.
package model

// Customer is one row of the telecom customer table.
type Customer struct {
	CustomerID       string          `yaml:"customer_id" json:"customer_id"`
	Gender           Gender          `yaml:"gender" json:"gender"`
	SeniorCitizen    bool            `yaml:"senior_citizen" json:"senior_citizen"`
	Partner          YesNo           `yaml:"partner" json:"partner"`
	TenureMonths     int             `yaml:"tenure_months" json:"tenure_months"`
	Contract         Contract        `yaml:"contract" json:"contract"`
	InternetService  InternetService `yaml:"internet_service" json:"internet_service"`
	PaymentMethod    PaymentMethod   `yaml:"payment_method" json:"payment_method"`
	OnlineSecurity   ServiceOption   `yaml:"online_security" json:"online_security"`
	OnlineBackup     ServiceOption   `yaml:"online_backup" json:"online_backup"`
	DeviceProtection ServiceOption   `yaml:"device_protection" json:"device_protection"`
	TechSupport      ServiceOption   `yaml:"tech_support" json:"tech_support"`
	StreamingTV      ServiceOption   `yaml:"streaming_tv" json:"streaming_tv"`
	StreamingMovies  ServiceOption   `yaml:"streaming_movies" json:"streaming_movies"`
	MonthlyCharges   float64         `yaml:"monthly_charges" json:"monthly_charges"`
	TotalCharges     float64         `yaml:"total_charges" json:"total_charges"`
	Churn            YesNo           `yaml:"churn" json:"churn"`
}

// Churned reports whether the customer carries the positive churn label.
func (c Customer) Churned() bool {
	return c.Churn == Yes
}
