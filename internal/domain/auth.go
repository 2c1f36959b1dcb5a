package domain

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignupForm struct {
	Username       string `json:"username" validate:"required,min=3"`
	Password       string `json:"password" validate:"required"`
	RetypePassword string `json:"retypePassword" validate:"required,eqfield=Password"`
	Phone          string `json:"phone" validate:"omitempty,phone10"`
}
