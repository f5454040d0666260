package models

// UserRequest represents the request body for POST /api/users
type UserRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// Fields exposes the payload to the validation rules, keyed by JSON name.
func (r *UserRequest) Fields() map[string]string {
	return map[string]string{
		"firstName":    r.FirstName,
		"lastName":     r.LastName,
		"emailAddress": r.EmailAddress,
		"password":     r.Password,
	}
}
