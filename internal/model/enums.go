package model

import "strings"

// Gender is a customer's recorded gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// GenderValues is the fixed enumeration order for gender breakdowns.
var GenderValues = []Gender{GenderMale, GenderFemale}

// ParseGender parses a gender value. Matching is case-insensitive; the
// canonical form is returned.
func ParseGender(s string) (Gender, error) {
	return parseEnum("gender", s, GenderValues)
}

// Valid reports whether g is one of the documented gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	}
	return false
}

// String returns the canonical string form of the gender.
func (g Gender) String() string {
	return string(g)
}

// YesNo is a binary flag field (partner, churn label).
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

// YesNoValues is the fixed enumeration order for binary breakdowns.
// "No" comes first so that churn distributions list retained customers
// before churned ones.
var YesNoValues = []YesNo{No, Yes}

// ParseYesNo parses a Yes/No value for the named field. Matching is
// case-insensitive; the canonical form is returned.
func ParseYesNo(field, s string) (YesNo, error) {
	return parseEnum(field, s, YesNoValues)
}

// Valid reports whether v is one of the documented Yes/No values.
func (v YesNo) Valid() bool {
	switch v {
	case Yes, No:
		return true
	}
	return false
}

// String returns the canonical string form of the flag.
func (v YesNo) String() string {
	return string(v)
}

// Contract is the customer's contract term.
type Contract string

const (
	ContractMonthToMonth Contract = "Month-to-month"
	ContractOneYear      Contract = "One year"
	ContractTwoYear      Contract = "Two year"
)

// ContractValues is the fixed enumeration order for contract breakdowns,
// shortest commitment first.
var ContractValues = []Contract{ContractMonthToMonth, ContractOneYear, ContractTwoYear}

// ParseContract parses a contract value. Matching is case-insensitive; the
// canonical form is returned.
func ParseContract(s string) (Contract, error) {
	return parseEnum("contract", s, ContractValues)
}

// Valid reports whether c is one of the documented contract values.
func (c Contract) Valid() bool {
	switch c {
	case ContractMonthToMonth, ContractOneYear, ContractTwoYear:
		return true
	}
	return false
}

// String returns the canonical string form of the contract.
func (c Contract) String() string {
	return string(c)
}

// InternetService is the customer's internet service type.
type InternetService string

const (
	InternetDSL   InternetService = "DSL"
	InternetFiber InternetService = "Fiber optic"
	InternetNone  InternetService = "No"
)

// InternetServiceValues is the fixed enumeration order for internet service
// breakdowns.
var InternetServiceValues = []InternetService{InternetDSL, InternetFiber, InternetNone}

// ParseInternetService parses an internet service value. Matching is
// case-insensitive; the canonical form is returned.
func ParseInternetService(s string) (InternetService, error) {
	return parseEnum("internet_service", s, InternetServiceValues)
}

// Valid reports whether i is one of the documented internet service values.
func (i InternetService) Valid() bool {
	switch i {
	case InternetDSL, InternetFiber, InternetNone:
		return true
	}
	return false
}

// String returns the canonical string form of the internet service.
func (i InternetService) String() string {
	return string(i)
}

// PaymentMethod is the customer's payment method.
type PaymentMethod string

const (
	PaymentElectronicCheck PaymentMethod = "Electronic check"
	PaymentMailedCheck     PaymentMethod = "Mailed check"
	PaymentBankTransfer    PaymentMethod = "Bank transfer"
	PaymentCreditCard      PaymentMethod = "Credit card"
)

// PaymentMethodValues is the fixed enumeration order for payment method
// breakdowns.
var PaymentMethodValues = []PaymentMethod{
	PaymentElectronicCheck,
	PaymentMailedCheck,
	PaymentBankTransfer,
	PaymentCreditCard,
}

// ParsePaymentMethod parses a payment method value. Matching is
// case-insensitive; the canonical form is returned.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	return parseEnum("payment_method", s, PaymentMethodValues)
}

// Valid reports whether p is one of the documented payment method values.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentElectronicCheck, PaymentMailedCheck, PaymentBankTransfer, PaymentCreditCard:
		return true
	}
	return false
}

// String returns the canonical string form of the payment method.
func (p PaymentMethod) String() string {
	return string(p)
}

// ServiceOption is the subscription state of an add-on service. Customers
// without internet service carry the dedicated "No internet service" value
// rather than a plain "No".
type ServiceOption string

const (
	ServiceYes        ServiceOption = "Yes"
	ServiceNo         ServiceOption = "No"
	ServiceNoInternet ServiceOption = "No internet service"
)

// ServiceOptionValues is the fixed enumeration order for add-on breakdowns.
var ServiceOptionValues = []ServiceOption{ServiceYes, ServiceNo, ServiceNoInternet}

// ParseServiceOption parses an add-on subscription value for the named
// field. Matching is case-insensitive; the canonical form is returned.
func ParseServiceOption(field, s string) (ServiceOption, error) {
	return parseEnum(field, s, ServiceOptionValues)
}

// Valid reports whether s is one of the documented add-on values.
func (s ServiceOption) Valid() bool {
	switch s {
	case ServiceYes, ServiceNo, ServiceNoInternet:
		return true
	}
	return false
}

// String returns the canonical string form of the add-on value.
func (s ServiceOption) String() string {
	return string(s)
}

// Subscribed reports whether the add-on is actually taken.
func (s ServiceOption) Subscribed() bool {
	return s == ServiceYes
}

// ParseSeniorCitizen parses the senior citizen flag. The CSV encodes it as
// either 0/1 or Yes/No; both spellings are accepted case-insensitively.
func ParseSeniorCitizen(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "yes":
		return true, nil
	case "0", "no":
		return false, nil
	default:
		return false, &InvalidEnumValueError{Field: "senior_citizen", Value: s}
	}
}

// parseEnum matches s against the domain values for field, ignoring case
// and surrounding whitespace.
func parseEnum[T ~string](field, s string, values []T) (T, error) {
	trimmed := strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(trimmed, string(v)) {
			return v, nil
		}
	}
	var zero T
	return zero, &InvalidEnumValueError{Field: field, Value: s}
}
