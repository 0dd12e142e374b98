package responses

type UploadAvatar struct {
	AvatarURL string `json:"avatar_url"`
}
