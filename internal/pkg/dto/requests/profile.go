package requests

type UpdateProfile struct {
	FullName     string `json:"full_name" validate:"required,max=120"`
	Phone        string `json:"phone" validate:"omitempty,phone"`
	Document     string `json:"document" validate:"omitempty,document"`
	CEP          string `json:"cep" validate:"omitempty,cep"`
	Street       string `json:"street" validate:"max=200"`
	Number       string `json:"number" validate:"max=20"`
	Complement   string `json:"complement" validate:"max=100"`
	Neighborhood string `json:"neighborhood" validate:"max=100"`
	City         string `json:"city" validate:"max=100"`
	State        string `json:"state" validate:"omitempty,len=2"`
}

type UploadAvatar struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}
