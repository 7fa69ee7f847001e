package model

// Envelope is the uniform JSON body of every response.
//
// IsSuccess=true carries Data (omitted for the health check) and never
// Error; IsSuccess=false carries Error and never Data.
type Envelope struct {
	IsSuccess     bool   `json:"is_success"`
	OfficialEmail string `json:"official_email"`
	Data          any    `json:"data,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Success wraps data in a successful envelope.
func Success(email string, data any) Envelope {
	return Envelope{
		IsSuccess:     true,
		OfficialEmail: email,
		Data:          data,
	}
}

// Failure wraps message in a failed envelope.
func Failure(email, message string) Envelope {
	return Envelope{
		IsSuccess:     false,
		OfficialEmail: email,
		Error:         message,
	}
}
