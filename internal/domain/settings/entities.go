package settings

// Setting is one key/value row; unknown keys are ignored.
type Setting struct {
	KeyName  string `gorm:"primaryKey;size:64;column:key_name" json:"key_name"`
	KeyValue string `gorm:"size:255;column:key_value" json:"key_value"`
}

func (Setting) TableName() string { return "settings" }

const (
	KeyMaxLoanMultiplier     = "max_loan_multiplier"
	KeyDefaultInterestRate   = "default_interest_rate"
	KeyRegistrationFeeAmount = "registration_fee_amount"
	KeyDefaultFineAmount     = "default_fine_amount"
	KeyLoanStrategy          = "loan_strategy"
	KeyFixedTermMonths       = "fixed_term_months"
	KeyFixedTermMonthlyRate  = "fixed_term_monthly_rate"
	KeyOverpaymentPolicy     = "overpayment_policy"
)

// Keys lists every recognised key.
var Keys = []string{
	KeyMaxLoanMultiplier,
	KeyDefaultInterestRate,
	KeyRegistrationFeeAmount,
	KeyDefaultFineAmount,
	KeyLoanStrategy,
	KeyFixedTermMonths,
	KeyFixedTermMonthlyRate,
	KeyOverpaymentPolicy,
}
