package store

import (
	"fmt"

	"github.com/hargabyte/churn/internal/model"
)

// ReplaceCustomers replaces the full customers table with the given
// records in a single transaction. An import is all-or-nothing: on any
// failure the previous contents stay intact.
func (s *Store) ReplaceCustomers(records []model.Customer) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM customers`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear customers: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO customers (customer_id, gender, senior_citizen, partner, tenure_months,
			contract, internet_service, payment_method, online_security, online_backup,
			device_protection, tech_support, streaming_tv, streaming_movies,
			monthly_charges, total_charges, churn)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare statement: %w", err)
	}

	for i, c := range records {
		_, err := stmt.Exec(
			c.CustomerID, string(c.Gender), c.SeniorCitizen, string(c.Partner), c.TenureMonths,
			string(c.Contract), string(c.InternetService), string(c.PaymentMethod),
			string(c.OnlineSecurity), string(c.OnlineBackup),
			string(c.DeviceProtection), string(c.TechSupport),
			string(c.StreamingTV), string(c.StreamingMovies),
			c.MonthlyCharges, c.TotalCharges, string(c.Churn))
		if err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("insert customer %d (%s): %w", i, c.CustomerID, err)
		}
	}

	stmt.Close()
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction (%d customers): %w", len(records), err)
	}

	return nil
}

// LoadCustomers returns all customer records ordered by customer_id.
func (s *Store) LoadCustomers() ([]model.Customer, error) {
	rows, err := s.db.Query(`
		SELECT customer_id, gender, senior_citizen, partner, tenure_months,
			contract, internet_service, payment_method, online_security, online_backup,
			device_protection, tech_support, streaming_tv, streaming_movies,
			monthly_charges, total_charges, churn
		FROM customers ORDER BY customer_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Customer
	for rows.Next() {
		var c model.Customer
		var gender, partner, contract, internet, payment string
		var security, backup, protection, support, tv, movies, churn string
		var senior int

		err := rows.Scan(
			&c.CustomerID, &gender, &senior, &partner, &c.TenureMonths,
			&contract, &internet, &payment, &security, &backup,
			&protection, &support, &tv, &movies,
			&c.MonthlyCharges, &c.TotalCharges, &churn)
		if err != nil {
			return nil, err
		}

		c.Gender = model.Gender(gender)
		c.SeniorCitizen = senior != 0
		c.Partner = model.YesNo(partner)
		c.Contract = model.Contract(contract)
		c.InternetService = model.InternetService(internet)
		c.PaymentMethod = model.PaymentMethod(payment)
		c.OnlineSecurity = model.ServiceOption(security)
		c.OnlineBackup = model.ServiceOption(backup)
		c.DeviceProtection = model.ServiceOption(protection)
		c.TechSupport = model.ServiceOption(support)
		c.StreamingTV = model.ServiceOption(tv)
		c.StreamingMovies = model.ServiceOption(movies)
		c.Churn = model.YesNo(churn)

		records = append(records, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// CountCustomers returns the number of customer records in the warehouse.
func (s *Store) CountCustomers() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
