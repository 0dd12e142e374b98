package requests

type SetDraftDate struct {
	Date string `json:"date" validate:"required,date"`
}

type SetDraftNotes struct {
	Notes string `json:"notes" validate:"max=1000"`
}

type SetDraftTerms struct {
	Accepted bool `json:"accepted"`
}
