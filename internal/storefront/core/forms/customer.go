package forms

// CustomerInfo is the contact block collected at checkout.
type CustomerInfo struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// Validate trims the fields in place and checks them.
func (c *CustomerInfo) Validate() error {
	trim(&c.Name, &c.Email, &c.Phone)
	return Validate(c)
}
