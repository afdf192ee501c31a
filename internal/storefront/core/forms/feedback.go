package forms

type FeedbackRequest struct {
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	Message       string `json:"message" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
}

func (r *FeedbackRequest) Validate() error {
	trim(&r.CustomerName, &r.CustomerEmail, &r.Message)
	return Validate(r)
}
