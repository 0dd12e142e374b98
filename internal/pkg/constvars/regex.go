package constvars

const (
	RegexDateYYYYMMDD       = `^\d{4}-\d{2}-\d{2}$`
	RegexClockHHMM          = `^\d{2}:\d{2}(:\d{2})?$`
	RegexCEP                = `^\d{5}-?\d{3}$`
	RegexPhoneNumberGeneral = `^\+?[1-9]\d{9,14}$`
	RegexNonDigit           = `\D`
)
