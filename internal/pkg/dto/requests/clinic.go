package requests

type SearchClinics struct {
	Query     string `validate:"max=100"`
	City      string `validate:"max=100"`
	State     string `validate:"omitempty,len=2"`
	Specialty string `validate:"max=100"`
	MinPrice  string `validate:"omitempty,numeric"`
	MaxPrice  string `validate:"omitempty,numeric"`
	Pagination
}

type GetAvailability struct {
	ClinicID string `validate:"required"`
	Date     string `validate:"required,date"`
}
